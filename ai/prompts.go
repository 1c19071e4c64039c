package ai

import "fmt"

// Prompts for the two agent steps. The SQL step sees the live schema;
// the formatter step sees the question and the JSON-encoded results.

const sqlPromptTemplate = `You are a PostgreSQL expert.

Convert the user question into SQL.

Rules:
- Only return SQL
- No explanation
- Only SELECT queries
- Use proper joins
- Use LIMIT 50 unless aggregation
- PostgreSQL syntax only

DATABASE SCHEMA:
%s`

const formatterPrompt = `You are a data analyst.

You will receive:
- user question
- SQL results (JSON)

Return JSON ONLY in this format:

{
  "text": "short explanation",
  "barchart": {
    "labels": [],
    "values": [],
    "xLabel": "",
    "yLabel": ""
  },
  "piechart": {
    "labels": [],
    "values": []
  }
}

Rules:
- ALWAYS return all 3 keys
- Only ONE chart should contain data
- If question is analytical → return chart
- If simple lookup → charts empty
- No explanation outside JSON`

// SQLPrompt returns the system prompt for SQL generation over schema.
func SQLPrompt(schema string) string {
	return fmt.Sprintf(sqlPromptTemplate, schema)
}

// FormatterPrompt returns the system prompt for turning results into a
// chat payload.
func FormatterPrompt() string {
	return formatterPrompt
}

// FormatterInput builds the user message for the formatter step.
func FormatterInput(question, resultsJSON string) string {
	return fmt.Sprintf("Question: %s\n\nSQL Results:\n%s", question, resultsJSON)
}
