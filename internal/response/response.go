// Package response holds the envelope every handler produces exactly once
// per request, and its mapping to HTTP status codes.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
)

var errInvalidRaw = errors.New("response: raw payload is not valid JSON")

// Kind classifies a failed outcome.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInternal
	// KindBadRequest and KindMethodNotAllowed are only produced by the HTTP
	// layer, before any collaborator is called.
	KindBadRequest
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInternal:
		return "internal"
	case KindBadRequest:
		return "bad_request"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "unknown"
	}
}

// Status is the HTTP status code reported for k.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// MsgInternal is written when nothing more specific may be shown to the caller.
const MsgInternal = "Could not complete request"

// ErrorBody is the JSON body of every failure.
type ErrorBody struct {
	Message string `json:"message"`
}

// Envelope is either Success(payload) or Failure(kind, message). The zero
// value is not valid; use Success or Failure.
type Envelope struct {
	payload any
	kind    Kind
	message string
}

func Success(payload any) Envelope {
	return Envelope{payload: payload}
}

func Failure(kind Kind, message string) Envelope {
	return Envelope{kind: kind, message: message}
}

func NotFound(message string) Envelope { return Failure(KindNotFound, message) }

func Internal(message string) Envelope { return Failure(KindInternal, message) }

func BadRequest(message string) Envelope { return Failure(KindBadRequest, message) }

func MethodNotAllowed(message string) Envelope { return Failure(KindMethodNotAllowed, message) }

func (e Envelope) OK() bool { return e.kind == 0 }

func (e Envelope) Payload() any { return e.payload }

func (e Envelope) Kind() Kind { return e.kind }

func (e Envelope) Message() string { return e.message }

func (e Envelope) Status() int {
	if e.OK() {
		return http.StatusOK
	}
	return e.kind.Status()
}

// Body is the value serialized as the response body.
func (e Envelope) Body() any {
	if e.OK() {
		return e.payload
	}
	return ErrorBody{Message: e.message}
}

// Write serializes e to w. A raw JSON payload is written byte for byte. If the
// payload cannot be encoded an internal failure is written instead, so the
// body is always JSON.
func (e Envelope) Write(w http.ResponseWriter) error {
	status := e.Status()
	body, err := e.encode()
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorBody{Message: MsgInternal})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, werr := w.Write(append(body, '\n')); werr != nil {
		return werr
	}
	return err
}

func (e Envelope) encode() ([]byte, error) {
	if raw, ok := e.payload.(json.RawMessage); ok && e.OK() {
		if !json.Valid(raw) {
			return nil, errInvalidRaw
		}
		return raw, nil
	}
	return json.Marshal(e.Body())
}
