package config

import "errors"

var (
	ErrBadCapacity  = errors.New("capacity must be positive")
	ErrBadThreshold = errors.New("threshold must be in (0, 1]")
	ErrBadHash      = errors.New("unknown hash function")
	ErrBadFormat    = errors.New("unknown output format")
	ErrBadLogLevel  = errors.New("unknown log level")
)
