package render

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks camera or matrix-derivation failures. The
	// frame is aborted and the camera has to be corrected before retrying.
	ErrConfiguration = errors.New("render: configuration error")

	// ErrDegenerateBasis is returned when the view basis cannot be built,
	// either because VUP is parallel to the view direction or PRP == SRP.
	ErrDegenerateBasis = errors.New("render: degenerate view basis")

	// ErrPipelineInvariant marks a vertex that reached the perspective
	// divide with w ≈ 0. Clipping should have removed it; the offending
	// line is skipped.
	ErrPipelineInvariant = errors.New("render: pipeline invariant violated")
)

func configError(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, what, err)
}
