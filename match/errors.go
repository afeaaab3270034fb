package match

import "errors"

// Sentinel errors returned by the engine. Callers match them with errors.Is;
// wrapped variants carry call-site context.
var (
	// ErrInvalidDimensions reports a pixel buffer whose length disagrees with
	// the declared width*height, or a zero dimension.
	ErrInvalidDimensions = errors.New("match: pixel buffer disagrees with dimensions")

	// ErrTemplateLargerThanSource reports a template that cannot fit inside
	// the source in at least one dimension.
	ErrTemplateLargerThanSource = errors.New("match: template larger than source")

	// ErrDegenerateTemplate reports a template with no contrast; NCC is
	// undefined for a flat template.
	ErrDegenerateTemplate = errors.New("match: template has no contrast")

	// ErrInvalidThreshold reports a threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("match: threshold outside [0, 1]")

	// ErrInvalidMaxCount reports a non-positive match limit.
	ErrInvalidMaxCount = errors.New("match: max count must be at least 1")

	// ErrInvalidThreadCount reports a negative worker count.
	ErrInvalidThreadCount = errors.New("match: negative thread count")
)
