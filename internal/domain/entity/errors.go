package entity

import "errors"

var (
	// ErrEmptyMessage user message is empty or whitespace
	ErrEmptyMessage = errors.New("empty message")

	// ErrUpstream completion service failed, timed out or returned unusable output
	ErrUpstream = errors.New("completion service failure")

	// ErrProductNotFound referenced product id is not in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrMissingConfiguration a required file is absent or unparsable
	ErrMissingConfiguration = errors.New("missing configuration")
)
