package skit

import (
	"errors"
	"fmt"
)

// HostError is a failure the host reported for a single call. It carries the
// host's error text verbatim.
type HostError struct {
	Call    string
	Message string
}

func (e *HostError) Error() string {
	return fmt.Sprintf("host call %q failed: %s", e.Call, e.Message)
}

// DecodeError is a response (or user submission) that does not match the
// declared shape.
type DecodeError struct {
	Call string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %q response: %v", e.Call, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrSchemaOutOfDate marks persisted data whose shape no longer matches the
// caller's declared type. The store never silently discards data; clearing
// the entry is the caller's decision.
var ErrSchemaOutOfDate = errors.New("stored data no longer matches the current schema: clear the store entry and rebuild it")
