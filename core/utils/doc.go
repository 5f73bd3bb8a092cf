// Package utils provides common utility functions for the pantry-tracker application.
// It includes helper functions for tolerant type conversion of loosely-typed
// API input and other shared logic that doesn't fit into domain-specific packages.
package utils
