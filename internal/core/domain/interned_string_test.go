package domain_test

import (
	"encoding/json"
	"testing"

	"go.trai.ch/sigil/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	s1 := "/docs/contract.pdf"
	s2 := "/docs/contract.pdf"

	is1 := domain.NewInternedString(s1)
	is2 := domain.NewInternedString(s2)

	// Identical strings must intern to the same handle.
	if is1.Value() != is2.Value() {
		t.Errorf("Expected handles to be equal for identical strings, got %v and %v", is1.Value(), is2.Value())
	}

	if is1.String() != s1 {
		t.Errorf("Expected String() to return %q, got %q", s1, is1.String())
	}
}

func TestInternedStringZeroValue(t *testing.T) {
	var is domain.InternedString
	if is.String() != "" {
		t.Errorf("Expected zero value to render empty, got %q", is.String())
	}
}

func TestInternedStringJSON(t *testing.T) {
	t.Run("Marshal and Unmarshal preserve string value", func(t *testing.T) {
		original := domain.NewInternedString("/docs/contract.pdf")

		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("Failed to marshal InternedString: %v", err)
		}

		expectedJSON := `"/docs/contract.pdf"`
		if string(data) != expectedJSON {
			t.Errorf("Expected JSON %q, got %q", expectedJSON, string(data))
		}

		var unmarshaled domain.InternedString
		err = json.Unmarshal(data, &unmarshaled)
		if err != nil {
			t.Fatalf("Failed to unmarshal InternedString: %v", err)
		}

		if unmarshaled.String() != original.String() {
			t.Errorf("Expected unmarshaled string %q, got %q", original.String(), unmarshaled.String())
		}
	})

	t.Run("Marshal and Unmarshal in struct", func(t *testing.T) {
		type TestStruct struct {
			Path domain.InternedString `json:"path"`
		}

		original := TestStruct{
			Path: domain.NewInternedString("signature.pdf"),
		}

		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("Failed to marshal struct: %v", err)
		}

		expectedJSON := `{"path":"signature.pdf"}`
		if string(data) != expectedJSON {
			t.Errorf("Expected JSON %q, got %q", expectedJSON, string(data))
		}

		var unmarshaled TestStruct
		err = json.Unmarshal(data, &unmarshaled)
		if err != nil {
			t.Fatalf("Failed to unmarshal struct: %v", err)
		}

		if unmarshaled.Path.String() != original.Path.String() {
			t.Errorf("Expected unmarshaled path %q, got %q", original.Path.String(), unmarshaled.Path.String())
		}
	})
}
