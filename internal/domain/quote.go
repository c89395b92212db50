// Package domain contains core business entities and rules.
package domain

import (
	"golang.org/x/text/cases"
)

// Quote represents a quotation attributed to an author.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the store-assigned unique identifier, stable for the record's lifetime.
	ID string

	// Text is the body of the quotation.
	Text string

	// Author is who said or wrote the quote.
	Author string

	// Genre is a free-form category label.
	Genre string
}

// FoldAuthor returns the case-folded form of an author name.
// Two names with the same folded form are the same author for lookup purposes.
// Folding does not strip diacritics, so "José" and "Jose" stay distinct.
func FoldAuthor(author string) string {
	// A Caser is stateful and must not be shared between goroutines.
	return cases.Fold().String(author)
}

// SameAuthor reports whether a and b name the same author under
// case-insensitive, accent-sensitive comparison.
func SameAuthor(a, b string) bool {
	return FoldAuthor(a) == FoldAuthor(b)
}
