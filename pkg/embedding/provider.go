package embedding

import "context"

// Provider defines the interface for generating text embeddings
type Provider interface {
	// Generate converts a query text into a vector. InputType distinguishes
	// query-side embeddings from stored document embeddings upstream.
	Generate(ctx context.Context, text string) ([]float32, error)
}
