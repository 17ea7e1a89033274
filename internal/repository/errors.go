package repository

import "errors"

// ErrNotFound is wrapped by every repository lookup that matches no row.
var ErrNotFound = errors.New("not found")

// ErrAmbiguousID is returned when an id prefix matches more than one row.
var ErrAmbiguousID = errors.New("id prefix matches more than one row")
