package repository

import "errors"

// ErrNotFound is returned by any repository when the requested record does
// not exist. Services translate it into their own taxonomy before it can
// reach a handler.
var ErrNotFound = errors.New("record not found")
