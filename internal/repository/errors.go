package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrClosed is returned by a Connector after Close.
var ErrClosed = errors.New("repository: connector closed")
