package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshal(t *testing.T) {
	var s sample
	if err := Unmarshal([]byte("name: test\ncount: 3\n"), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Name != "test" || s.Count != 3 {
		t.Errorf("got %+v", s)
	}
}

func TestUnmarshalValidation(t *testing.T) {
	var s sample

	if err := Unmarshal(nil, &s); !errors.Is(err, ErrNilData) {
		t.Errorf("nil data err = %v", err)
	}
	if err := Unmarshal([]byte("name: x"), nil); !errors.Is(err, ErrNilDestination) {
		t.Errorf("nil destination err = %v", err)
	}

	oversized := []byte("name: " + strings.Repeat("x", MaxInputSize))
	if err := Unmarshal(oversized, &s); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("oversized err = %v", err)
	}
}

func TestUnmarshalStrictRejectsUnknownFields(t *testing.T) {
	var s sample
	data := []byte("name: x\nbogus: y\n")

	if err := Unmarshal(data, &s); err != nil {
		t.Errorf("lenient Unmarshal rejected unknown field: %v", err)
	}
	if err := UnmarshalStrict(data, &s); err == nil {
		t.Error("UnmarshalStrict accepted unknown field")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	in := sample{Name: "round", Count: 7}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out sample
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip: got %+v, want %+v", out, in)
	}
}
