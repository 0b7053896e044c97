package responses

import (
	"encoding/json"
	"net/http"

	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
)

// Envelope is the uniform JSON response body.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the public error payload.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteSuccess writes a success envelope with the given status.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

// WriteError maps the error to its HTTP status and public payload. Untyped
// errors surface as internal errors without leaking their message.
func WriteError(w http.ResponseWriter, err error) {
	code := pkgerrors.CodeOf(err)
	if code == "" {
		code = pkgerrors.CodeInternal
	}
	meta := pkgerrors.MetadataFor(code)

	body := &ErrorBody{
		Code:    string(code),
		Message: meta.PublicMessage,
	}
	if typed := pkgerrors.As(err); typed != nil {
		if typed.Message() != "" {
			body.Message = typed.Message()
		}
		if meta.DetailsAllowed {
			body.Details = typed.Details()
		}
	}
	write(w, meta.HTTPStatus, Envelope{Success: false, Error: body})
}

func write(w http.ResponseWriter, status int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// an encode failure here has no recovery path; headers are already sent
	_ = json.NewEncoder(w).Encode(envelope)
}
