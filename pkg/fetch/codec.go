package fetch

import (
	"encoding/json"
	"fmt"
)

type payload struct {
	Kind string          `json:"kind"`
	JSON json.RawMessage `json:"json,omitempty"`
	Text *string         `json:"text,omitempty"`
	Data []byte          `json:"data,omitempty"`
}

type envelopeCodec struct{}

func (envelopeCodec) Encode(value any) (string, error) {
	var p payload
	switch v := value.(type) {
	case []byte:
		p = payload{Kind: "binary", Data: v}
	case string:
		p = payload{Kind: "text", Text: &v}
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode json payload: %w", err)
		}
		p = payload{Kind: "json", JSON: raw}
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}
	return string(data), nil
}

func (envelopeCodec) Decode(raw string) (any, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch p.Kind {
	case "binary":
		return p.Data, nil
	case "text":
		if p.Text == nil {
			return "", nil
		}
		return *p.Text, nil
	case "json":
		var value any
		if err := json.Unmarshal(p.JSON, &value); err != nil {
			return nil, fmt.Errorf("decode json payload: %w", err)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unknown payload kind %q", p.Kind)
	}
}
