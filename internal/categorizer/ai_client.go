// Package categorizer provides clients for the transaction classification service:
// 1. HTTPClient calling the remote classification endpoint
// 2. GeminiClient asking a Gemini model to pick a category
// 3. KeywordClassifier matching keyword rules loaded from YAML
package categorizer

import "context"

// Client maps a free-text transaction description to a category label.
//
// An empty label with a nil error means the service found no category.
// Any error means the call itself failed. Implementations must honor ctx
// cancellation and be safe for concurrent use.
type Client interface {
	Classify(ctx context.Context, description string) (string, error)
}

// ClientFunc adapts an ordinary function to the Client interface.
type ClientFunc func(ctx context.Context, description string) (string, error)

// Classify calls f(ctx, description).
func (f ClientFunc) Classify(ctx context.Context, description string) (string, error) {
	return f(ctx, description)
}
