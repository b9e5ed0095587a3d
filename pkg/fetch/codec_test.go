package fetch

import "testing"

func TestEnvelopeJSONRoundTrip(t *testing.T) {
	codec := envelopeCodec{}

	raw, err := codec.Encode(map[string]any{"name": "John"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	value, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	doc, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("Decode() = %T, want map[string]any", value)
	}
	if doc["name"] != "John" {
		t.Errorf("doc[name] = %v, want John", doc["name"])
	}
}

func TestEnvelopeTextRoundTrip(t *testing.T) {
	codec := envelopeCodec{}

	raw, err := codec.Encode("plain text")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	value, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if value != "plain text" {
		t.Errorf("Decode() = %v (%T), want the original string", value, value)
	}
}

func TestEnvelopeBinaryRoundTrip(t *testing.T) {
	codec := envelopeCodec{}

	raw, err := codec.Encode([]byte{0xde, 0xad, 0xbe, 0xef})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	value, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	data, ok := value.([]byte)
	if !ok {
		t.Fatalf("Decode() = %T, want []byte", value)
	}
	if len(data) != 4 || data[0] != 0xde || data[3] != 0xef {
		t.Errorf("Decode() = %x, want deadbeef", data)
	}
}

func TestEnvelopeUnknownKind(t *testing.T) {
	codec := envelopeCodec{}

	if _, err := codec.Decode(`{"kind":"protobuf"}`); err == nil {
		t.Fatal("Decode() error = nil for unknown kind, want error")
	}
}
