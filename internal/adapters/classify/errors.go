package classify

import "errors"

// Sentinel kinds for classification errors.
var (
	ErrBadResponse = errors.New("bad classifier response")
)
