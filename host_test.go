package skit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// fakeHost scripts host responses per call name.
type fakeHost struct {
	invoked   []string
	payloads  []any
	responses map[string]string
	fail      map[string]string
}

func (h *fakeHost) Invoke(ctx context.Context, name string, payload any) (json.RawMessage, error) {
	h.invoked = append(h.invoked, name)
	h.payloads = append(h.payloads, payload)

	if msg, ok := h.fail[name]; ok {
		return nil, &HostError{Call: name, Message: msg}
	}
	if body, ok := h.responses[name]; ok {
		return json.RawMessage(body), nil
	}
	return json.RawMessage(`null`), nil
}

func TestStdioHostInvoke(t *testing.T) {
	var in, out bytes.Buffer

	// Pre-seed the response the "host" would send back
	in.WriteString(`{"id": 1, "result": "hello"}` + "\n")

	host := NewStdioHost(&in, &out)

	result, err := host.Invoke(context.Background(), "arg", map[string]string{"prompt": "hi"})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if string(result) != `"hello"` {
		t.Errorf("Expected raw result %q, got %q", `"hello"`, result)
	}

	// The request must carry id, name and payload
	var req struct {
		ID      uint64            `json:"id"`
		Name    string            `json:"name"`
		Payload map[string]string `json:"payload"`
	}
	if err := json.Unmarshal(out.Bytes(), &req); err != nil {
		t.Fatalf("Request is not valid JSON: %v", err)
	}
	if req.ID != 1 || req.Name != "arg" || req.Payload["prompt"] != "hi" {
		t.Errorf("Unexpected request envelope: %+v", req)
	}
}

func TestStdioHostErrorResponse(t *testing.T) {
	var in, out bytes.Buffer
	in.WriteString(`{"id": 1, "error": "user cancelled"}` + "\n")

	host := NewStdioHost(&in, &out)

	_, err := host.Invoke(context.Background(), "arg", nil)
	if err == nil {
		t.Fatal("Expected error for host error response")
	}

	var hostErr *HostError
	if !errors.As(err, &hostErr) {
		t.Fatalf("Expected *HostError, got %T: %v", err, err)
	}
	if hostErr.Call != "arg" || hostErr.Message != "user cancelled" {
		t.Errorf("Unexpected host error: %+v", hostErr)
	}
}

func TestStdioHostIDMismatch(t *testing.T) {
	var in, out bytes.Buffer
	in.WriteString(`{"id": 99, "result": null}` + "\n")

	host := NewStdioHost(&in, &out)

	if _, err := host.Invoke(context.Background(), "arg", nil); err == nil {
		t.Error("Expected error for mismatched response id")
	}
}

func TestStdioHostCancelledContext(t *testing.T) {
	var in, out bytes.Buffer
	host := NewStdioHost(&in, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := host.Invoke(ctx, "arg", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Error("Expected no request written after cancellation")
	}
}

func TestKitArg(t *testing.T) {
	host := &fakeHost{responses: map[string]string{"arg": `"blue"`}}
	kit := New(host)

	choice, err := kit.Arg(context.Background(), "Pick a color", "red", "blue")
	if err != nil {
		t.Fatalf("Arg failed: %v", err)
	}
	if choice != "blue" {
		t.Errorf("Expected 'blue', got %q", choice)
	}
	if len(host.invoked) != 1 || host.invoked[0] != "arg" {
		t.Errorf("Expected a single 'arg' invocation, got %v", host.invoked)
	}
}

func TestKitCallDecodeFailure(t *testing.T) {
	host := &fakeHost{responses: map[string]string{"arg": `{"not": "a string"}`}}
	kit := New(host)

	_, err := kit.Arg(context.Background(), "Pick")
	if err == nil {
		t.Fatal("Expected decode error for mismatched response shape")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Expected *DecodeError, got %T: %v", err, err)
	}
	if decodeErr.Call != "arg" {
		t.Errorf("Expected decode error to name the call, got %q", decodeErr.Call)
	}
}

func TestKitHostFailurePropagates(t *testing.T) {
	host := &fakeHost{fail: map[string]string{"notify": "display unavailable"}}
	kit := New(host)

	err := kit.Notify(context.Background(), "title", "body")
	if err == nil {
		t.Fatal("Expected host failure to propagate")
	}
	if !strings.Contains(err.Error(), "display unavailable") {
		t.Errorf("Expected host error text to survive, got %v", err)
	}
}

func TestKitInputInt(t *testing.T) {
	host := &fakeHost{responses: map[string]string{"input": `" 42 "`}}
	kit := New(host)

	n, err := kit.InputInt(context.Background(), "How many?", nil)
	if err != nil {
		t.Fatalf("InputInt failed: %v", err)
	}
	if n != 42 {
		t.Errorf("Expected 42, got %d", n)
	}
}

func TestKitInputIntRejectsNonNumeric(t *testing.T) {
	host := &fakeHost{responses: map[string]string{"input": `"forty-two"`}}
	kit := New(host)

	_, err := kit.InputInt(context.Background(), "How many?", nil)
	if err == nil {
		t.Fatal("Expected error for non-numeric submission")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("Expected *DecodeError for non-numeric submission, got %T: %v", err, err)
	}
}

func TestKitForm(t *testing.T) {
	host := &fakeHost{responses: map[string]string{"form": `{"title": "So What", "bpm": "136"}`}}
	kit := New(host)

	fields := NewFields().
		Text("title", "Title").Required().
		Number("bpm", "Tempo")

	values, err := kit.Form(context.Background(), fields)
	if err != nil {
		t.Fatalf("Form failed: %v", err)
	}
	if values["title"] != "So What" || values["bpm"] != "136" {
		t.Errorf("Unexpected form values: %v", values)
	}
}

func TestKitFormInvalidFieldsNeverReachHost(t *testing.T) {
	host := &fakeHost{}
	kit := New(host)

	_, err := kit.Form(context.Background(), NewFields().Text("dup", "A").Text("dup", "B"))
	if err == nil {
		t.Fatal("Expected builder validation error")
	}
	if len(host.invoked) != 0 {
		t.Errorf("Expected no host call for an invalid form, got %v", host.invoked)
	}
}
