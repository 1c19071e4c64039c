// Package agent answers natural-language questions about a PostgreSQL
// database. Each question takes two model calls: one writes SQL against
// the live schema, the other turns the query results into a chat payload
// with optional bar or pie chart data.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DachengChen/askdb/ai"
	"github.com/DachengChen/askdb/applog"
	"github.com/DachengChen/askdb/chat"
	"github.com/DachengChen/askdb/db"
)

// FormatterErrorText is the text of the payload returned when the
// formatter step fails.
const FormatterErrorText = "Error generating response"

// Database is the part of *db.DB the agent needs.
type Database interface {
	SchemaContext(ctx context.Context, schema string) (string, error)
	RunQuery(ctx context.Context, sql string, maxRows int) (*db.QueryResult, error)
}

var _ Database = (*db.DB)(nil)

// Agent turns questions into SQL, runs it and explains the results.
type Agent struct {
	provider ai.Provider
	db       Database
	schema   string
	maxRows  int
}

// New creates an agent over database d. An empty schema means "public".
func New(provider ai.Provider, d Database, schema string, maxRows int) *Agent {
	if schema == "" {
		schema = "public"
	}
	return &Agent{provider: provider, db: d, schema: schema, maxRows: maxRows}
}

// Provider returns the model backend in use.
func (a *Agent) Provider() ai.Provider { return a.provider }

// Answer runs the full pipeline for one question. Schema and SQL
// generation failures are returned as errors. A failing query is passed
// to the formatter as {"error": msg}, and a failing formatter yields
// FallbackPayload.
func (a *Agent) Answer(ctx context.Context, question string) (*chat.Payload, error) {
	start := time.Now()

	schema, err := a.db.SchemaContext(ctx, a.schema)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	sql, err := a.GenerateSQL(ctx, schema, question)
	if err != nil {
		return nil, err
	}
	applog.Event("agent", "sql=%q", sql)

	results := a.execute(ctx, sql)

	payload := a.Format(ctx, question, results)
	applog.Event("agent", "answered in %s (bar=%t pie=%t)",
		time.Since(start).Round(time.Millisecond), payload.HasBarChart(), payload.HasPieChart())
	return payload, nil
}

// GenerateSQL asks the model for a query over schema and strips any
// markdown fencing from the reply.
func (a *Agent) GenerateSQL(ctx context.Context, schema, question string) (string, error) {
	const op = "GenerateSQL"
	system := ai.SQLPrompt(schema)
	ai.LogAIRequest(op, a.provider.Name(), map[string]string{
		"Question":       question,
		"Schema Context": schema,
	})
	reply, err := a.provider.Complete(ctx, system, ai.User(question))
	ai.LogAIResponse(op, reply, err)
	if err != nil {
		return "", fmt.Errorf("generate sql: %w", err)
	}

	sql := ai.CleanSQL(reply)
	if sql == "" {
		return "", fmt.Errorf("generate sql: model returned no query")
	}
	return sql, nil
}

// execute runs sql and returns what the formatter should see: the result
// set, or {"error": msg} when the query fails.
func (a *Agent) execute(ctx context.Context, sql string) any {
	res, err := a.db.RunQuery(ctx, sql, a.maxRows)
	if err != nil {
		applog.Error("query failed: %v", err)
		return map[string]string{"error": err.Error()}
	}
	return res
}

// Format asks the model to explain results and parses its JSON reply.
func (a *Agent) Format(ctx context.Context, question string, results any) *chat.Payload {
	const op = "FormatResponse"

	encoded, err := json.Marshal(results)
	if err != nil {
		applog.Error("encode results: %v", err)
		return FallbackPayload()
	}

	input := ai.FormatterInput(question, string(encoded))
	ai.LogAIRequest(op, a.provider.Name(), map[string]string{"Input": input})
	reply, err := a.provider.Complete(ctx, ai.FormatterPrompt(), ai.User(input))
	ai.LogAIResponse(op, reply, err)
	if err != nil {
		applog.Error("format response: %v", err)
		return FallbackPayload()
	}

	payload, err := ParsePayload(reply)
	if err != nil {
		applog.Error("format response: %v", err)
		return FallbackPayload()
	}
	return payload
}

// ParsePayload extracts the chat payload from a formatter reply.
func ParsePayload(reply string) (*chat.Payload, error) {
	raw := ai.ExtractJSON(reply)
	if raw == "" {
		return nil, fmt.Errorf("no JSON found in formatter reply")
	}
	var p chat.Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("parse formatter reply: %w", err)
	}
	return &p, nil
}

// FallbackPayload is returned when the formatter step fails.
func FallbackPayload() *chat.Payload {
	return &chat.Payload{
		Text:     FormatterErrorText,
		BarChart: &chat.BarChart{Labels: []string{}, Values: []float64{}},
		PieChart: &chat.PieChart{Labels: []string{}, Values: []float64{}},
	}
}
