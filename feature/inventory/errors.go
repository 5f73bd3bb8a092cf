package inventory

import "errors"

var (
	// ErrItemNotFound is returned when an item id resolves to no record.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidExpiryDate is returned for dates that are not YYYY-MM-DD.
	ErrInvalidExpiryDate = errors.New("invalid expiryDate format, use YYYY-MM-DD")
	// ErrInvalidQuantity is returned for negative manual quantities.
	ErrInvalidQuantity = errors.New("quantity must be a non-negative integer")
)
