package drums

import (
	"errors"
	"fmt"
)

// Sentinel errors for the generation and encoding taxonomy. Callers match
// with errors.Is; constructors below attach context.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnknownStyle     = errors.New("unknown style")
	ErrUnknownPattern   = errors.New("unknown pattern")
	ErrEncoding         = errors.New("encoding error")
)

func invalidParameterf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func unknownStyle(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

func unknownPattern(kind, name string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownPattern, kind, name)
}

func encodingErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrEncoding, fmt.Sprintf(format, args...))
}
