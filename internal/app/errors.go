package service

import "errors"

// Sentinel kinds for analysis errors.
var (
	ErrUnknownQuestion = errors.New("unknown question")
)
