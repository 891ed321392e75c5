package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"
)

type mockSummary struct {
	Name  string
	Value int
}

// ============================================================================
// Success Method Tests
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	tests := []struct {
		name     string
		data     interface{}
		validate func(t *testing.T, data interface{})
	}{
		{
			name: "map data",
			data: map[string]interface{}{"test": "value"},
			validate: func(t *testing.T, data interface{}) {
				if data.(map[string]interface{})["test"] != "value" {
					t.Errorf("Expected data.test to be 'value', got %v", data)
				}
			},
		},
		{
			name: "struct",
			data: mockSummary{Name: "บ้านเดี่ยว", Value: 3},
			validate: func(t *testing.T, data interface{}) {
				if data.(map[string]interface{})["Name"] != "บ้านเดี่ยว" {
					t.Errorf("Expected data.Name to be 'บ้านเดี่ยว', got %v", data)
				}
			},
		},
		{
			name: "nil data",
			data: nil,
			validate: func(t *testing.T, data interface{}) {
				if data != nil {
					t.Errorf("Expected data to be nil, got %v", data)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter := &OutputFormatter{JSON: true, Out: &buf}
			humanCalled := false
			err := formatter.Success(tt.data, func(io.Writer) error {
				humanCalled = true
				return nil
			})
			if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			if humanCalled {
				t.Error("Expected human renderer to be skipped in JSON mode")
			}

			var result map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
				t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
			}
			if !result["success"].(bool) {
				t.Error("Expected success to be true")
			}
			tt.validate(t, result["data"])
		})
	}
}

func TestOutputFormatter_Success_Quiet(t *testing.T) {
	var buf bytes.Buffer
	formatter := &OutputFormatter{Quiet: true, Out: &buf}

	err := formatter.Success(mockSummary{Name: "x"}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "should not print")
		return err
	})
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output in quiet mode, got %q", buf.String())
	}
}

func TestOutputFormatter_Success_HumanReadable(t *testing.T) {
	tests := []struct {
		name          string
		human         func(w io.Writer) error
		shouldContain string
	}{
		{
			name: "custom renderer",
			human: func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "3 of 5 done")
				return err
			},
			shouldContain: "3 of 5 done",
		},
		{
			name:          "fallback prints the value",
			human:         nil,
			shouldContain: "Value:42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter := &OutputFormatter{Out: &buf}
			if err := formatter.Success(mockSummary{Name: "n", Value: 42}, tt.human); err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			if !strings.Contains(buf.String(), tt.shouldContain) {
				t.Errorf("Expected output to contain '%s', got '%s'", tt.shouldContain, buf.String())
			}
		})
	}
}

// ============================================================================
// Error Method Tests
// ============================================================================

func TestOutputFormatter_Error_JSON(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{name: "standard error", code: "TEST_ERROR", message: "something went wrong"},
		{name: "with suggestion", code: "NO_PROPERTY", message: "no property given", suggestion: "export PRAWEENA_PROPERTY=<id>"},
		{name: "special characters in message", code: "SPECIAL_CHAR", message: "error with \"quotes\" and \n newlines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter := &OutputFormatter{JSON: true, Out: &buf}
			if err := formatter.ErrorWithSuggestion(tt.code, tt.message, tt.suggestion); err != nil {
				t.Errorf("Expected no error, got %v", err)
			}

			var result map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
				t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
			}
			if result["success"].(bool) {
				t.Error("Expected success to be false")
			}
			errorData := result["error"].(map[string]interface{})
			if errorData["code"] != tt.code {
				t.Errorf("Expected code '%s', got '%v'", tt.code, errorData["code"])
			}
			if errorData["message"] != tt.message {
				t.Errorf("Expected message '%s', got '%v'", tt.message, errorData["message"])
			}
			_, hasSuggestion := errorData["suggestion"]
			if hasSuggestion != (tt.suggestion != "") {
				t.Errorf("Expected suggestion present=%v, got %v", tt.suggestion != "", hasSuggestion)
			}
		})
	}
}

func TestOutputFormatter_Error_HumanReadable(t *testing.T) {
	var out, errOut bytes.Buffer
	formatter := &OutputFormatter{Out: &out, ErrOut: &errOut}

	if err := formatter.ErrorWithSuggestion("X", "database is locked", "retry later"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "database is locked") || !strings.Contains(errOut.String(), "retry later") {
		t.Errorf("Expected message and suggestion on stderr, got %q", errOut.String())
	}
}
