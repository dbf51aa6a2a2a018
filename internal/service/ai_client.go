package service

import (
	"context"

	"placefinder/internal/model"
)

// NoDataAnswer is the fixed answer when no catalog data grounds a reply
const NoDataAnswer = "No matching data found in our listings."

// Responder phrases an answer to a query from catalog context
type Responder interface {
	// Answer must return NoDataAnswer when catalogContext is empty and must
	// only state facts present in catalogContext otherwise.
	Answer(ctx context.Context, query, catalogContext string, intent *model.Intent, history []model.Message) (string, error)

	// IsEnabled returns whether the responder is configured and ready
	IsEnabled() bool
}

// Ensure OpenAIClient implements Responder
var _ Responder = (*OpenAIClient)(nil)
