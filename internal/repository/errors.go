package repository

import "errors"

// ErrEmptyURL is returned by Open when no connection string is configured.
var ErrEmptyURL = errors.New("repository: empty connection string")
