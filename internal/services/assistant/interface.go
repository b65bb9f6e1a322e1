// File: internal/services/assistant/interface.go
package assistant

import "context"

// Turn is one prior entry of the conversation transcript passed to the
// answer-generation service.
type Turn struct {
	Role    string
	Content string
}

// Provider is the external answer-generation collaborator: a question plus
// the prior transcript in, an answer text out. Everything behind it
// (retrieval, ranking, prompting) is opaque to this backend.
type Provider interface {
	Ask(ctx context.Context, question string, history []Turn) (string, error)
	HealthCheck(ctx context.Context) error
}
