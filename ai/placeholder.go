package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Placeholder is a mock AI provider for development. It answers the SQL
// step with a catalog query and the formatter step with a payload that
// summarizes the rows it was given, so the agent works end to end
// without an API key.
type Placeholder struct {
	delay time.Duration
}

var _ Provider = (*Placeholder)(nil)

func NewPlaceholder() *Placeholder {
	return &Placeholder{delay: 300 * time.Millisecond}
}

func (p *Placeholder) Name() string {
	return "placeholder"
}

const placeholderSQL = `SELECT table_name, COUNT(*) AS column_count
FROM information_schema.columns
WHERE table_schema = 'public'
GROUP BY table_name
ORDER BY column_count DESC
LIMIT 10`

func (p *Placeholder) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if strings.HasPrefix(strings.TrimSpace(system), "You are a PostgreSQL expert") {
		return "```sql\n" + placeholderSQL + "\n```", nil
	}

	var last string
	if len(messages) > 0 {
		last = messages[len(messages)-1].Content
	}
	return placeholderPayload(last), nil
}

// placeholderPayload charts the first text and numeric columns of the
// results embedded in the formatter input.
func placeholderPayload(input string) string {
	type bar struct {
		Labels []string  `json:"labels"`
		Values []float64 `json:"values"`
		XLabel string    `json:"xLabel"`
		YLabel string    `json:"yLabel"`
	}
	type pie struct {
		Labels []string  `json:"labels"`
		Values []float64 `json:"values"`
	}
	out := struct {
		Text     string `json:"text"`
		BarChart bar    `json:"barchart"`
		PieChart pie    `json:"piechart"`
	}{
		BarChart: bar{Labels: []string{}, Values: []float64{}},
		PieChart: pie{Labels: []string{}, Values: []float64{}},
	}

	var results struct {
		Rows  []map[string]interface{} `json:"rows"`
		Error string                   `json:"error"`
	}
	if idx := strings.Index(input, "SQL Results:\n"); idx >= 0 {
		json.Unmarshal([]byte(input[idx+len("SQL Results:\n"):]), &results) //nolint:errcheck
	}

	switch {
	case results.Error != "":
		out.Text = "The query failed: " + results.Error
	case len(results.Rows) == 0:
		out.Text = "No rows matched. Configure a real AI provider for actual analysis."
	default:
		out.Text = fmt.Sprintf("Found %d rows (placeholder analysis).", len(results.Rows))
		for _, row := range results.Rows {
			label, value, ok := labelAndValue(row)
			if !ok {
				continue
			}
			out.BarChart.Labels = append(out.BarChart.Labels, label)
			out.BarChart.Values = append(out.BarChart.Values, value)
		}
		if len(out.BarChart.Labels) > 0 {
			out.BarChart.XLabel = "Item"
			out.BarChart.YLabel = "Value"
		}
	}

	data, _ := json.Marshal(out)
	return string(data)
}

func labelAndValue(row map[string]interface{}) (string, float64, bool) {
	var label string
	var value float64
	var haveLabel, haveValue bool
	for _, v := range row {
		switch x := v.(type) {
		case string:
			if !haveLabel {
				label, haveLabel = x, true
			}
		case float64:
			if !haveValue {
				value, haveValue = x, true
			}
		}
	}
	return label, value, haveLabel && haveValue
}
