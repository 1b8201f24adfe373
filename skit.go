// Package skit provides typed Go bindings for the desktop automation host's
// capability surface: prompts, display panels, pickers, notifications,
// clipboard, environment lookup and a single-key JSON store.
//
// Every call forwards a plain payload to the named host capability and
// decodes the response into the declared result shape. Calls are strictly
// sequential; there is no retry, batching or caching beyond the explicit
// store operations.
package skit

import (
	"context"
	"encoding/json"
	"os"
)

// Kit is the entry point scripts use to talk to the host. The host is an
// injected capability, not an ambient global, so a script (or a test) can
// swap in any implementation.
type Kit struct {
	host Host
}

// New creates a Kit over the given host.
func New(host Host) *Kit {
	return &Kit{host: host}
}

// NewStdio creates a Kit speaking the host's stdio protocol, for scripts
// the host launched as a child process.
func NewStdio() *Kit {
	return New(NewStdioHost(os.Stdin, os.Stdout))
}

// call forwards payload to the named host capability and decodes the result
// into out. A nil out discards the result; a null result leaves out as-is.
func (k *Kit) call(ctx context.Context, name string, payload, out any) error {
	raw, err := k.host.Invoke(ctx, name, payload)
	if err != nil {
		return err
	}

	if out == nil || len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Call: name, Err: err}
	}
	return nil
}
