package eco

import "errors"

// Sentinel kinds for ECO code errors.
var (
	ErrMalformedCode   = errors.New("malformed ECO code")
	ErrIndexOutOfRange = errors.New("ECO index out of range")
)
