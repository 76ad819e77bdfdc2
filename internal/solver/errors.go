package solver

import "errors"

// ErrConfiguration indicates solver configuration that can never run: a
// non-positive trial count, an unknown policy or distribution name, or a
// bias parameter outside its documented range. It is reported before any
// trial is started.
var ErrConfiguration = errors.New("solver: invalid configuration")
