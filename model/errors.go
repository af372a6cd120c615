package model

import "errors"

var (
	// ErrInvalidArgument reports an unsupported catalogue key or pipe role.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfiguration reports run settings or geometry that cannot produce a
	// physical thermal network.
	ErrConfiguration = errors.New("configuration error")
)
