package snli

import "errors"

var (
	// ErrUnknownLabel is returned when a gold label column holds a string
	// outside the fixed 3-way enumeration
	ErrUnknownLabel = errors.New("unknown gold label")

	// ErrMalformedRecord is returned when a data line has too few tab-separated columns
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMalformedVector is returned when a retained pretrained-vector line
	// has fields that do not parse as numbers, or the wrong number of them
	ErrMalformedVector = errors.New("malformed pretrained vector")

	// ErrDimensionMismatch is returned when vector dimensions don't match
	ErrDimensionMismatch = errors.New("vector dimensions do not match")

	// ErrWordNotFound is returned when looking up a word absent from the embedding table
	ErrWordNotFound = errors.New("word not found")
)
