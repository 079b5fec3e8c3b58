package config

import "errors"

var ErrInvalidField = errors.New("invalid config field")
var ErrUnknownLogLevel = errors.New("unknown log level")
var ErrUnknownSaveMode = errors.New("unknown corpus save mode")
var ErrMissingCorpusDir = errors.New("missing corpus dir")
var ErrConfigIsNil = errors.New("config is nil")
