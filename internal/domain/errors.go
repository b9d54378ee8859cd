package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the canonical ingredient catalog cannot be loaded
	ErrCatalogUnavailable = errors.New("ingredient catalog unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when a resolution is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrIngredientAPIFailure is returned when the remote ingredient service request fails
	ErrIngredientAPIFailure = errors.New("ingredient API request failed")

	// ErrStoreClosed is returned when an ingredient store is used after Close
	ErrStoreClosed = errors.New("ingredient store closed")
)
