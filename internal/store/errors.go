package store

import "errors"

var (
	ErrClosed = errors.New("review store closed")
)
