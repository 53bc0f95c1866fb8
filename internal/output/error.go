package output

import (
	"encoding/json"
	"fmt"
	"io"

	secreonerrors "github.com/cuedego/secreon/pkg/errors"
)

// ErrorOutput represents a structured error for JSON output.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	ExitCode int    `json:"exit_code"`
}

// FormatError formats an error for display.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}

	if format == FormatJSON {
		return formatErrorJSON(w, err)
	}
	return formatErrorText(w, err)
}

// formatErrorJSON outputs error in JSON format.
func formatErrorJSON(w io.Writer, err error) error {
	var se *secreonerrors.Error
	if secreonerrors.As(err, &se) {
		output := ErrorOutput{
			Error: ErrorDetail{
				Kind:     string(se.Kind),
				Message:  se.Message,
				ExitCode: secreonerrors.ExitCode(err),
			},
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	output := ErrorOutput{
		Error: ErrorDetail{
			Kind:     "GeneralError",
			Message:  err.Error(),
			ExitCode: secreonerrors.ExitGeneral,
		},
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// formatErrorText outputs error in text format.
func formatErrorText(w io.Writer, err error) error {
	var se *secreonerrors.Error
	if secreonerrors.As(err, &se) {
		_, writeErr := fmt.Fprintf(w, "Error [%s]: %s\n", se.Kind, se.Message)
		return writeErr
	}

	_, writeErr := fmt.Fprintf(w, "Error: %s\n", err.Error())
	return writeErr
}

// FormatSuccess formats a success message.
func FormatSuccess(w io.Writer, message string, format Format) error {
	if format == FormatJSON {
		output := map[string]string{"status": "success", "message": message}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
