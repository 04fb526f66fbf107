package multigrid

import (
	"errors"
	"fmt"
)

var (
	ErrLevels       = errors.New("multigrid: level count must be at least 1")
	ErrSize         = errors.New("multigrid: size must be positive")
	ErrNotAllocated = errors.New("multigrid: pyramid not allocated, call Resize first")
	ErrOutputSize   = errors.New("multigrid: output target does not match the pyramid size")
)

// LevelError reports a render target the device could not allocate.
// There is no fallback; callers treat it as fatal.
type LevelError struct {
	Level         int
	Width, Height int
	Err           error
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("multigrid: level %d (%dx%d): %v", e.Level, e.Width, e.Height, e.Err)
}

func (e *LevelError) Unwrap() error {
	return e.Err
}
