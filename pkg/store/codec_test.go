package store

import "testing"

func TestJSONCodecRoundTrip(t *testing.T) {
	type settings struct {
		Theme  string   `json:"theme"`
		Flags  []string `json:"flags"`
		Volume int      `json:"volume"`
	}

	codec := JSON[settings]()
	want := settings{Theme: "dark", Flags: []string{"beta", "labs"}, Volume: 7}

	raw, err := codec.Encode(want)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Theme != want.Theme || got.Volume != want.Volume || len(got.Flags) != 2 {
		t.Errorf("Decode(Encode()) = %+v, want %+v", got, want)
	}
}

func TestJSONCodecEncodesStrings(t *testing.T) {
	codec := JSON[string]()

	raw, err := codec.Encode("John")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if raw != `"John"` {
		t.Errorf("Encode() = %q, want %q", raw, `"John"`)
	}
}

func TestJSONCodecDecodeError(t *testing.T) {
	codec := JSON[int]()

	if _, err := codec.Decode("not a number"); err == nil {
		t.Fatal("Decode() error = nil for garbage input, want error")
	}
}
