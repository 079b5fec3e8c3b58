package verify

import "errors"

var ErrNoOperations = errors.New("operation set is empty")
var ErrTooManyOperations = errors.New("operation set too large")
var ErrInvalidOperations = errors.New("invalid operation set")
var ErrUnknownOutcome = errors.New("unknown outcome")
var ErrReplayOutOfRange = errors.New("replay index out of range")
