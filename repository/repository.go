// Package repository holds the storage adapters of this application
package repository

import "context"

// WordCache remembers recently issued secret words per topic so that new
// sessions can ask the backend to avoid repeating them. Entries expire on
// their own; losing them only makes repeats possible again.
type WordCache interface {
	// Recent returns the recently issued words for a topic.
	Recent(ctx context.Context, topic string) ([]string, error)

	// Add records a word issued for a topic.
	Add(ctx context.Context, topic, word string) error
}
