package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
	// Out defaults to stdout; errors in human mode go to ErrOut (stderr)
	Out    io.Writer
	ErrOut io.Writer
}

// Success outputs a successful result. human renders the human-readable
// form and is skipped in quiet mode.
func (f *OutputFormatter) Success(data interface{}, human func(w io.Writer) error) error {
	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]interface{}{
			"success": true,
			"data":    data,
		})
	}
	if f.Quiet {
		return nil
	}
	if human == nil {
		_, err := fmt.Fprintf(f.out(), "%+v\n", data)
		return err
	}
	return human(f.out())
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]interface{}{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]interface{}{
			"success": false,
			"error":   errData,
		})
	}

	w := f.ErrOut
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(w, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}
