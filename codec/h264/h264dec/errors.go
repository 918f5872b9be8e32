package h264dec

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned by the SPS, NAL and filler utilities.
var (
	// ErrNotFound is returned when no start code, or no SPS NAL unit, exists
	// before the end of a buffer.
	ErrNotFound = errors.New("no SPS found")

	// ErrUnsupported is the parent of all conditions the SPS rewriter declines
	// to handle. Callers check for it with errors.Is and carry on with the
	// unmodified buffer.
	ErrUnsupported = errors.New("unsupported")

	// ErrVUINotSupported is returned when an SPS carries VUI parameters.
	ErrVUINotSupported = fmt.Errorf("handling vui_parameters not implemented: %w", ErrUnsupported)

	// ErrMalformed is returned when a buffer ends before a syntax element that
	// it must contain, or holds an element that cannot be represented.
	ErrMalformed = errors.New("malformed bitstream")

	// ErrInvalidSize is returned for a filler NAL unit request shorter than
	// the smallest possible filler NAL unit.
	ErrInvalidSize = errors.New("invalid filler NAL size")

	// ErrInvalidDimensions is returned when the requested picture dimensions
	// cannot be produced by cropping the coded picture.
	ErrInvalidDimensions = errors.New("invalid picture dimensions")

	// ErrUnsupportedProfileLevel is returned by the profile and level lookups
	// for values outside their tables.
	ErrUnsupportedProfileLevel = errors.New("unsupported profile/level")
)

// ProfileError is returned when an SPS has a profile_idc that signals the
// chroma format and bit depth extension fields, which are not handled.
type ProfileError struct {
	ProfileIDC uint8
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("handling profile_idc %d not implemented", e.ProfileIDC)
}

// Is reports ErrUnsupported as a match so that callers need not care which
// unsupported condition was hit.
func (e *ProfileError) Is(target error) bool { return target == ErrUnsupported }
