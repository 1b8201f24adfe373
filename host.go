package skit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Host is the capability surface scripts run against. Invoke forwards one
// named call with a JSON-serializable payload and returns the host's raw
// response.
type Host interface {
	Invoke(ctx context.Context, name string, payload any) (json.RawMessage, error)
}

// request is one outbound call envelope.
type request struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Payload any    `json:"payload,omitempty"`
}

// response is the host's answer to a single request.
type response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error,omitempty"`
}

// StdioHost speaks the host's newline-delimited JSON protocol over a
// reader/writer pair, normally the process's stdin/stdout. Calls are
// strictly sequential: each request is written and its response read to
// completion before the next call may start.
type StdioHost struct {
	mu   sync.Mutex
	enc  *json.Encoder
	dec  *json.Decoder
	next uint64
}

// NewStdioHost creates a host over the given transport.
func NewStdioHost(r io.Reader, w io.Writer) *StdioHost {
	return &StdioHost{
		enc: json.NewEncoder(w),
		dec: json.NewDecoder(r),
	}
}

// Invoke sends one request and waits for its response. Cancellation is only
// observed before the request is written; an in-flight host call cannot be
// interrupted.
func (h *StdioHost) Invoke(ctx context.Context, name string, payload any) (json.RawMessage, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.next++
	id := h.next

	if err := h.enc.Encode(request{ID: id, Name: name, Payload: payload}); err != nil {
		return nil, fmt.Errorf("failed to send host request %q: %w", name, err)
	}

	var resp response
	if err := h.dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to read host response for %q: %w", name, err)
	}

	if resp.ID != id {
		return nil, fmt.Errorf("host response id mismatch for %q: sent %d, got %d", name, id, resp.ID)
	}

	if resp.Error != "" {
		return nil, &HostError{Call: name, Message: resp.Error}
	}

	return resp.Result, nil
}
