package book

import "errors"

var (
	// ErrInvalidBook is a constraint rejected by the store (missing field, dangling author)
	ErrInvalidBook = errors.New("book violates a store constraint")
)
