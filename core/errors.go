package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAxis       = errors.New("axis index out of range")
	ErrUnsupportedConfig = errors.New("unsupported preferences format")
	ErrInvalidHandle     = errors.New("invalid arena handle")
	ErrWrongThread       = errors.New("called off the mutation goroutine")
)

// Assert panics with err when cond is false. It guards programmer
// errors only; recoverable conditions are returned as errors.
func Assert(cond bool, err error, format string, args ...interface{}) {
	if cond {
		return
	}
	panic(fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
}
