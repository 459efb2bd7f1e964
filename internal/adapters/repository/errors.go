package repository

import "errors"

// Sentinel kinds for record store errors.
var (
	ErrEmptyStore = errors.New("record store is empty")
)
