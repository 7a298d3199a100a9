package freq

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned for out-of-range or non-finite cutoffs, unknown pass or
	// mask names and other caller mistakes. It is never retried.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDimensionMismatch is returned when grids, masks or spectra that must align do not.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidConfiguration)
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfiguration}, args...)...)
}

func mismatch(what string, h, w, H, W int) error {
	return fmt.Errorf("%w: %s is %dx%d, want %dx%d", ErrDimensionMismatch, what, h, w, H, W)
}
