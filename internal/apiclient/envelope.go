package apiclient

import (
	"encoding/json"
	"fmt"
)

// decodeResult unwraps a response body into target. Deployments differ
// on whether the payload arrives bare or wrapped under a "result" key,
// with either casing; all three shapes are accepted.
func decodeResult(body []byte, target interface{}) error {
	var envelope struct {
		Result      json.RawMessage `json:"result"`
		ResultUpper json.RawMessage `json:"Result"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Result) > 0 {
			return json.Unmarshal(envelope.Result, target)
		}
		if len(envelope.ResultUpper) > 0 {
			return json.Unmarshal(envelope.ResultUpper, target)
		}
	}
	return json.Unmarshal(body, target)
}

// decodeError extracts a server-provided message from an error body,
// tolerating both message casings and nested error objects.
func decodeError(statusCode int, body []byte) error {
	var envelope struct {
		Message      string `json:"message"`
		MessageUpper string `json:"Message"`
		Error        struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Message != "":
			return fmt.Errorf("api error (status %d): %s", statusCode, envelope.Message)
		case envelope.MessageUpper != "":
			return fmt.Errorf("api error (status %d): %s", statusCode, envelope.MessageUpper)
		case envelope.Error.Message != "":
			return fmt.Errorf("api error (status %d): %s", statusCode, envelope.Error.Message)
		}
	}
	return fmt.Errorf("api error (status %d)", statusCode)
}
