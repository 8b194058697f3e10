package errx

import (
	"fmt"
	"sync"
)

// ErrorType classifies errors into broad categories used for reporting.
type ErrorType string

const (
	TypeValidation    ErrorType = "VALIDATION"
	TypeNotFound      ErrorType = "NOT_FOUND"
	TypeConflict      ErrorType = "CONFLICT"
	TypeAuthorization ErrorType = "AUTHORIZATION"
	TypeBusiness      ErrorType = "BUSINESS"
	TypeExternal      ErrorType = "EXTERNAL"
	TypeInternal      ErrorType = "INTERNAL"
)

// Code identifies a registered error definition, namespaced by registry prefix.
type Code string

type definition struct {
	code       string
	errType    ErrorType
	httpStatus int
	message    string
}

// Registry holds the error definitions of one domain package.
type Registry struct {
	prefix string
	mu     sync.RWMutex
	defs   map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with the given
// namespace, e.g. NewRegistry("MATCH") yields codes like "MATCH.PROVIDER_FAILED".
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register adds an error definition and returns its code.
func (r *Registry) Register(code string, errType ErrorType, httpStatus int, message string) Code {
	full := Code(r.prefix + "." + code)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[full] = definition{
		code:       code,
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New creates an error instance for a registered code.
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()
	if !ok {
		return &Error{
			Code:       string(code),
			Type:       TypeInternal,
			HTTPStatus: 500,
			Message:    "unregistered error code",
		}
	}
	return &Error{
		Code:       string(code),
		Type:       def.errType,
		HTTPStatus: def.httpStatus,
		Message:    def.message,
	}
}

// NewWithCause creates an error instance wrapping an underlying cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.cause = cause
	return e
}

// Error is a structured application error carrying a stable code, an HTTP
// status and free-form details for diagnostics.
type Error struct {
	Code       string         `json:"code"`
	Type       ErrorType      `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches an underlying cause.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// WithDetail attaches a single detail entry.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches multiple detail entries at once.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// Is matches errors by registered code so callers can use errors.Is against
// a template created from the same registry.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTPResponse is the wire shape returned to clients.
type HTTPResponse struct {
	Error   string         `json:"error"`
	Type    ErrorType      `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToHTTPResponse converts the error into its client-facing shape. The cause
// chain is deliberately not exposed.
func (e *Error) ToHTTPResponse() HTTPResponse {
	return HTTPResponse{
		Error:   e.Message,
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}
