package chapa

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Message holds the envelope message field. The API usually returns a plain
// string, but validation failures on batch endpoints return a JSON object
// keyed by field path, so the raw form is preserved.
type Message struct {
	raw json.RawMessage
}

// UnmarshalJSON stores the message bytes as-is.
func (m *Message) UnmarshalJSON(data []byte) error {
	m.raw = append(m.raw[:0], data...)
	return nil
}

// MarshalJSON writes the message back exactly as it arrived.
func (m Message) MarshalJSON() ([]byte, error) {
	if len(m.raw) == 0 {
		return []byte("null"), nil
	}
	return m.raw, nil
}

// String returns the message text. Object messages are rendered as compact
// JSON so nothing is lost when the message is surfaced in an error.
func (m Message) String() string {
	if !present(m.raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(m.raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, m.raw); err == nil {
		return buf.String()
	}
	return string(m.raw)
}

// FieldErrors unpacks an object-shaped message into per-field messages
// (e.g. "bulk_data.1.amount" -> ["The amount field is required."]).
// Returns nil when the message is a plain string.
func (m Message) FieldErrors() map[string][]string {
	var fields map[string][]string
	if err := json.Unmarshal(m.raw, &fields); err != nil {
		return nil
	}
	return fields
}

func messageFromString(s string) Message {
	raw, _ := json.Marshal(s)
	return Message{raw: raw}
}

// envelope is the uniform {status, message, data} wrapper every endpoint
// returns. List endpoints additionally carry a sibling meta object.
type envelope struct {
	Message Message         `json:"message"`
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

var errMissingData = errors.New("envelope has no data")

var nullLiteral = []byte("null")

// present reports whether a raw JSON value exists and is not null.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, nullLiteral)
}

// decodeEnvelope parses the response wrapper and applies the failure rules:
// a body that is not an envelope is a decode failure, and a non-success
// envelope status wins over the HTTP status code, since the API reports
// logical failures with HTTP 200 in some flows.
func decodeEnvelope(statusCode int, body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{StatusCode: statusCode, RawBody: body, Err: err}
	}
	if env.Status != statusSuccess {
		return nil, ClassifyError(&RemoteError{StatusCode: statusCode, Message: env.Message, RawBody: body})
	}
	return &env, nil
}

// decodeData deserializes the envelope's data section into the
// endpoint-specific type. Missing data on a success envelope is a decode
// failure, never silently defaulted.
func decodeData[T any](env *envelope, statusCode int, body []byte) (T, error) {
	var out T
	if !present(env.Data) {
		return out, &DecodeError{StatusCode: statusCode, RawBody: body, Err: errMissingData}
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, &DecodeError{StatusCode: statusCode, RawBody: body, Err: err}
	}
	return out, nil
}

// decodeResponse maps a raw status and body straight to the typed data
// value. Mapping is a pure function of its inputs: the same bytes always
// produce the same result.
func decodeResponse[T any](statusCode int, body []byte) (T, error) {
	env, err := decodeEnvelope(statusCode, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeData[T](env, statusCode, body)
}
