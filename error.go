package twc

import (
	"encoding/json"
	"fmt"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrBadParameter
	ErrMissingCredential
	ErrMissingMethod
	ErrTransport
	ErrParse
	ErrUpstream
	ErrNotFound
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Errors
type Err int

// ParseError is returned when a response body is not valid JSON. The raw
// body is kept for diagnostics.
type ParseError struct {
	Body []byte
	Err  error
}

// UpstreamError is returned when the API answers with a well-formed payload
// which has a falsy "success" field. Errors holds the "errors" value as decoded.
type UpstreamError struct {
	Errors any
}

// UpstreamErrorDetail is a single entry of the "errors" array
type UpstreamErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrBadParameter:
		return "bad parameter"
	case ErrMissingCredential:
		return "apiKey is missing"
	case ErrMissingMethod:
		return "method is missing"
	case ErrTransport:
		return "transport error"
	case ErrParse:
		return "invalid response body"
	case ErrUpstream:
		return "upstream error"
	case ErrNotFound:
		return "not found"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

////////////////////////////////////////////////////////////////////////////////
// PARSE ERROR

func (e *ParseError) Error() string {
	if e.Err == nil {
		return ErrParse.Error()
	}
	return fmt.Sprintf("%s: %v", ErrParse, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

////////////////////////////////////////////////////////////////////////////////
// UPSTREAM ERROR

func (e *UpstreamError) Error() string {
	messages := make([]string, 0, 2)
	for _, detail := range e.Details() {
		switch {
		case detail.Code != "" && detail.Message != "":
			messages = append(messages, detail.Code+" "+detail.Message)
		case detail.Message != "":
			messages = append(messages, detail.Message)
		case detail.Code != "":
			messages = append(messages, detail.Code)
		}
	}
	if len(messages) == 0 {
		return ErrUpstream.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUpstream, strings.Join(messages, ", "))
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// Details decodes the errors value into code and message pairs. The API
// wraps each entry as {"error":{"code":...,"message":...}}, but a bare
// {"code":...,"message":...} entry is accepted too. Entries which cannot be
// decoded are skipped.
func (e *UpstreamError) Details() []UpstreamErrorDetail {
	data, err := json.Marshal(e.Errors)
	if err != nil {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		entries = []json.RawMessage{data}
	}
	result := make([]UpstreamErrorDetail, 0, len(entries))
	for _, entry := range entries {
		var wrapped struct {
			Error *UpstreamErrorDetail `json:"error"`
			UpstreamErrorDetail
		}
		if err := json.Unmarshal(entry, &wrapped); err != nil {
			continue
		}
		if wrapped.Error != nil {
			result = append(result, *wrapped.Error)
		} else if wrapped.Code != "" || wrapped.Message != "" {
			result = append(result, wrapped.UpstreamErrorDetail)
		}
	}
	return result
}
