package storage

import "errors"

// ErrNotFound is returned (wrapped) by Provider getters when no row matches.
var ErrNotFound = errors.New("not found")
