// Package errors provides sentinel errors for cart operations.
package errors

import "errors"

var ErrSnapshotNotFound = errors.New("cart snapshot not found")
var ErrMalformedSnapshot = errors.New("malformed cart snapshot")

var ErrInvalidProduct = errors.New("product must not be empty")
var ErrInvalidPrice = errors.New("unit price must not be negative")

var ErrEmptyCart = errors.New("cart is empty")
var ErrInvalidSession = errors.New("invalid session id")

var ErrStorageUnavailable = errors.New("cart storage is unavailable")
var ErrSaveSnapshot = errors.New("failed to save cart snapshot")
var ErrLoadSnapshot = errors.New("failed to load cart snapshot")
var ErrDeleteSnapshot = errors.New("failed to delete cart snapshot")
