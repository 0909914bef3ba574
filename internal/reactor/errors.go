package reactor

import "errors"

var (
	ErrUnknownMaterial     = errors.New("reactor: unknown material")
	ErrInvalidTimestep     = errors.New("reactor: timestep must be positive")
	ErrInvalidMaxTime      = errors.New("reactor: max time must be positive")
	ErrInvalidSaveInterval = errors.New("reactor: save interval must not be negative")
	ErrInvalidGeometry     = errors.New("reactor: radii and elongation must be positive")
	ErrInvalidDensity      = errors.New("reactor: initial density must be positive")
)
