package scene

// HandleSet is an insertion-ordered set of arena handles.
type HandleSet[H comparable] struct {
	order []H
	index map[H]struct{}
}

type PointSet = HandleSet[PointID]
type AngleSet = HandleSet[AngleID]

func NewPointSet() *PointSet { return &PointSet{index: map[PointID]struct{}{}} }
func NewAngleSet() *AngleSet { return &AngleSet{index: map[AngleID]struct{}{}} }

// Add reports whether h was new.
func (s *HandleSet[H]) Add(h H) bool {
	if s.index == nil {
		s.index = make(map[H]struct{})
	}
	if _, ok := s.index[h]; ok {
		return false
	}
	s.index[h] = struct{}{}
	s.order = append(s.order, h)
	return true
}

func (s *HandleSet[H]) Contains(h H) bool {
	_, ok := s.index[h]
	return ok
}

func (s *HandleSet[H]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Items must not be modified by the caller.
func (s *HandleSet[H]) Items() []H {
	if s == nil {
		return nil
	}
	return s.order
}

func (s *HandleSet[H]) Clear() {
	s.order = s.order[:0]
	clear(s.index)
}
