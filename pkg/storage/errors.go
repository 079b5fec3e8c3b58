package storage

import "errors"

var ErrNotFound = errors.New("scenario not found")
var ErrPathRequired = errors.New("path is required for a persistent corpus")
var ErrClosed = errors.New("corpus is closed")
