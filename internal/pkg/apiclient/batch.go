package apiclient

import (
	"context"
	"fmt"
)

// BatchResult contains results of a batch operation
type BatchResult struct {
	// Succeeded contains IDs of records that were successfully processed
	Succeeded []string `json:"succeeded"`

	// Failed contains errors for records that failed
	Failed []BatchError `json:"failed,omitempty"`
}

// BatchError represents a failure for a single item in a batch operation
type BatchError struct {
	// ID of the record that failed
	ID string `json:"id"`

	// Error message
	Error string `json:"error"`

	err error
}

// Err returns the underlying error
func (e BatchError) Err() error {
	return e.err
}

// HasErrors returns true if any operations in the batch failed
func (r *BatchResult) HasErrors() bool {
	return len(r.Failed) > 0
}

// Summary returns a summary of the batch operation
func (r *BatchResult) Summary() string {
	if len(r.Failed) == 0 {
		return fmt.Sprintf("all %d operations succeeded", len(r.Succeeded))
	}
	return fmt.Sprintf("%d succeeded, %d failed", len(r.Succeeded), len(r.Failed))
}

// RunBatch applies fn to each ID in order.
// Operations are best-effort - failures for individual records don't stop the batch.
// A cancelled context fails the remaining IDs.
func RunBatch(ctx context.Context, ids []string, fn func(ctx context.Context, id string) error) *BatchResult {
	result := &BatchResult{
		Succeeded: make([]string, 0, len(ids)),
		Failed:    make([]BatchError, 0),
	}

	for _, id := range ids {
		if id == "" {
			result.Failed = append(result.Failed, BatchError{
				ID:    "(empty)",
				Error: "record ID is required",
			})
			continue
		}
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, BatchError{ID: id, Error: err.Error(), err: err})
			continue
		}
		if err := fn(ctx, id); err != nil {
			result.Failed = append(result.Failed, BatchError{ID: id, Error: err.Error(), err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	return result
}
