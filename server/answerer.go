//go:generate mockgen -destination=./answerer_mock_test.go -package=server -source=answerer.go Answerer
package server

import (
	"context"

	"github.com/DachengChen/askdb/chat"
)

// Answerer produces a chat payload for a question. *agent.Agent
// implements it.
type Answerer interface {
	Answer(ctx context.Context, question string) (*chat.Payload, error)
}
