package skit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type argPayload struct {
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices,omitempty"`
}

// Arg presents a selection prompt and returns the chosen value. With no
// choices the host falls back to free-text entry.
func (k *Kit) Arg(ctx context.Context, prompt string, choices ...string) (string, error) {
	var out string
	if err := k.call(ctx, "arg", argPayload{Prompt: prompt, Choices: choices}, &out); err != nil {
		return "", err
	}
	return out, nil
}

// InputOptions tune a free-text prompt.
type InputOptions struct {
	Placeholder string `json:"placeholder,omitempty"`
	Default     string `json:"default,omitempty"`
	Secret      bool   `json:"secret,omitempty"`
}

type inputPayload struct {
	Prompt string `json:"prompt"`
	InputOptions
}

// Input asks for free text. opts may be nil.
func (k *Kit) Input(ctx context.Context, prompt string, opts *InputOptions) (string, error) {
	payload := inputPayload{Prompt: prompt}
	if opts != nil {
		payload.InputOptions = *opts
	}

	var out string
	if err := k.call(ctx, "input", payload, &out); err != nil {
		return "", err
	}
	return out, nil
}

// InputInt asks for free text and parses it as an integer. A non-numeric
// submission is a local decode failure, not a host error, and is fatal like
// every other failure.
func (k *Kit) InputInt(ctx context.Context, prompt string, opts *InputOptions) (int, error) {
	text, err := k.Input(ctx, prompt, opts)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &DecodeError{Call: "input", Err: fmt.Errorf("expected a number, got %q", text)}
	}
	return n, nil
}

type editorPayload struct {
	Content string `json:"content"`
}

// Editor opens the host's rich editor seeded with initial content and
// returns the full edited text.
func (k *Kit) Editor(ctx context.Context, initial string) (string, error) {
	var out string
	if err := k.call(ctx, "editor", editorPayload{Content: initial}, &out); err != nil {
		return "", err
	}
	return out, nil
}

type formPayload struct {
	Fields []FieldSpec `json:"fields"`
}

// Form presents a templated multi-field prompt built with Fields and
// returns the submitted values keyed by field key.
func (k *Kit) Form(ctx context.Context, fields *Fields) (map[string]string, error) {
	specs, err := fields.Build()
	if err != nil {
		return nil, err
	}

	var out map[string]string
	if err := k.call(ctx, "form", formPayload{Fields: specs}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
