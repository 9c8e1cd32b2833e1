package ports

import "context"

// SequenceRepository hands out document sequence numbers.
type SequenceRepository interface {
	// Next atomically increments the named counter and returns its new value,
	// starting at 1.
	Next(ctx context.Context, name string) (int64, error)
}
