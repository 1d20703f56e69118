package domain

import "errors"

// ErrAlreadyExists is returned by repositories on a unique key violation.
var ErrAlreadyExists = errors.New("already exists")
