// Package utils provides common utility functions for the catalog tools.
// It holds formatting helpers and other shared logic that doesn't fit into
// domain-specific packages.
package utils
