package jsonutil

import (
	"encoding/json"
	"testing"
)

func TestFlexibleStringValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "string value", input: `"abc123"`, expected: "abc123"},
		{name: "integer value", input: `42`, expected: "42"},
		{name: "large integer", input: `1000234`, expected: "1000234"},
		{name: "float value", input: `3.5`, expected: "3.5"},
		{name: "boolean value", input: `true`, expected: "true"},
		{name: "null value", input: `null`, expected: ""},
		{name: "empty input", input: ``, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlexibleStringValue(json.RawMessage(tt.input))
			if got != tt.expected {
				t.Errorf("FlexibleStringValue(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
