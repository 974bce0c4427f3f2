// Package result builds the three-state outcome every resource operation returns.
//
// A success carries its payload under a resource-scoped key, a fail carries a
// field -> explanation map, and an error carries a generic message only.
package result

// Status is the outcome kind.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFail    Status = "fail"
	StatusError   Status = "error"
)

// Result is the outcome envelope. It serialises to {status, data, message}.
type Result struct {
	Status  Status         `json:"status"`
	Data    map[string]any `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Fields maps an offending field to a human-readable explanation.
type Fields map[string]string

// Success wraps payload under key.
func Success(key string, payload any) *Result {
	return &Result{
		Status: StatusSuccess,
		Data:   map[string]any{key: payload},
	}
}

// Fail reports one or more business-rule violations.
func Fail(fields Fields) *Result {
	data := make(map[string]any, len(fields))
	for field, reason := range fields {
		data[field] = reason
	}

	return &Result{
		Status: StatusFail,
		Data:   data,
	}
}

// FailField is Fail for a single violation.
func FailField(field, reason string) *Result {
	return Fail(Fields{field: reason})
}

// Error reports an unexpected failure. The message must not carry secret material.
func Error(message string) *Result {
	return &Result{
		Status:  StatusError,
		Message: message,
	}
}

// IsSuccess reports whether r is a success.
func (r *Result) IsSuccess() bool {
	return r != nil && r.Status == StatusSuccess
}

// FailReason returns the explanation recorded for field, if r is a fail.
func (r *Result) FailReason(field string) (string, bool) {
	if r == nil || r.Status != StatusFail {
		return "", false
	}
	reason, ok := r.Data[field].(string)

	return reason, ok
}

// Payload returns the success payload stored under key.
func (r *Result) Payload(key string) (any, bool) {
	if !r.IsSuccess() {
		return nil, false
	}
	payload, ok := r.Data[key]

	return payload, ok
}
