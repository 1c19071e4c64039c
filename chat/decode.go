package chat

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Payloads come from a model by way of the agent, so decoding never
// rejects a well-formed JSON document. Fields of the wrong type degrade:
// a non-object payload or chart is empty, a non-string text is shown as
// its JSON literal, and a non-numeric value becomes an undefined point.

// Labels is a chart label list. Non-string entries keep their JSON text.
type Labels []string

// Series is a chart value list. Undefined entries are stored as NaN and
// encoded as null.
type Series []float64

// Undefined reports whether v marks a missing value.
func Undefined(v float64) bool { return math.IsNaN(v) }

// UnmarshalJSON implements json.Unmarshaler.
func (p *Payload) UnmarshalJSON(data []byte) error {
	*p = Payload{}
	obj, ok := decodeObject(data)
	if !ok {
		return nil
	}
	p.Text = decodeText(obj["text"])
	if fields, ok := decodeObject(obj["barchart"]); ok {
		p.BarChart = &BarChart{
			Labels: decodeLabels(fields["labels"]),
			Values: decodeSeries(fields["values"]),
			XLabel: decodeText(fields["xLabel"]),
			YLabel: decodeText(fields["yLabel"]),
		}
	}
	if fields, ok := decodeObject(obj["piechart"]); ok {
		p.PieChart = &PieChart{
			Labels: decodeLabels(fields["labels"]),
			Values: decodeSeries(fields["values"]),
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Labels) UnmarshalJSON(data []byte) error {
	*l = decodeLabels(data)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Series) UnmarshalJSON(data []byte) error {
	*s = decodeSeries(data)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func decodeObject(data []byte) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &obj) != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// decodeText returns strings as-is and renders non-zero numbers and true
// as their literal. Anything else, zero and false included, is empty.
func decodeText(data json.RawMessage) string {
	var v any
	if len(data) == 0 || json.Unmarshal(data, &v) != nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == 0 {
			return ""
		}
		return string(bytes.TrimSpace(data))
	case bool:
		if x {
			return "true"
		}
	}
	return ""
}

func decodeLabels(data []byte) Labels {
	var items []json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &items) != nil || items == nil {
		return nil
	}
	out := make(Labels, len(items))
	for i, raw := range items {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			out[i] = s
			continue
		}
		if t := bytes.TrimSpace(raw); !bytes.Equal(t, []byte("null")) {
			out[i] = string(t)
		}
	}
	return out
}

func decodeSeries(data []byte) Series {
	var items []json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &items) != nil || items == nil {
		return nil
	}
	out := make(Series, len(items))
	for i, raw := range items {
		f := math.NaN()
		if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			if json.Unmarshal(raw, &f) != nil {
				f = math.NaN()
			}
		}
		out[i] = f
	}
	return out
}
