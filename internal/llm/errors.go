package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is the cause of a BackendError for a reply with no usable text
var ErrEmptyResponse = errors.New("empty response")

// BackendError wraps a failure reported by a generative backend
type BackendError struct {
	Provider Provider
	Model    string
	Message  string
	Cause    error
}

func (e *BackendError) Error() string {
	origin := strings.TrimSpace(string(e.Provider) + " " + e.Model)
	msg := e.Message
	if origin != "" {
		msg = origin + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// nonEmpty returns text unchanged, or a BackendError when it is blank
func nonEmpty(provider Provider, model, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &BackendError{Provider: provider, Model: model, Message: "unusable response", Cause: ErrEmptyResponse}
	}
	return text, nil
}
