package media

import (
	"bytes"
	"fmt"
)

// Status is the envelope's success flag. It encodes as the JSON number 200
// on success and the JSON literal false on failure.
type Status int

const (
	StatusFailed Status = 0
	StatusOK     Status = 200
)

func (s Status) MarshalJSON() ([]byte, error) {
	if s == StatusOK {
		return []byte("200"), nil
	}
	return []byte("false"), nil
}

func (s *Status) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "200":
		*s = StatusOK
	case "false":
		*s = StatusFailed
	default:
		return fmt.Errorf("invalid status %s", data)
	}
	return nil
}

// Outcome is implemented by every Envelope regardless of its payload.
type Outcome interface {
	OK() bool
	Message() string
}

// Envelope wraps a provider result. Exactly one of Result and Msg is set.
type Envelope[T any] struct {
	Creator string `json:"creator"`
	Status  Status `json:"status"`
	Result  *T     `json:"result,omitempty"`
	Msg     string `json:"msg,omitempty"`
}

// OK reports whether the extraction succeeded.
func (e Envelope[T]) OK() bool { return e.Status == StatusOK && e.Result != nil }

// Message returns the failure description, empty on success.
func (e Envelope[T]) Message() string { return e.Msg }

// Succeed wraps result in a success envelope.
func Succeed[T any](creator string, result T) Envelope[T] {
	return Envelope[T]{Creator: creator, Status: StatusOK, Result: &result}
}

// Fail wraps err in a failure envelope.
func Fail[T any](creator string, err error) Envelope[T] {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Envelope[T]{Creator: creator, Status: StatusFailed, Msg: msg}
}
