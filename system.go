package skit

import "context"

type promptPayload struct {
	Prompt string `json:"prompt"`
}

// SelectFile opens the host's file picker and returns the chosen path.
func (k *Kit) SelectFile(ctx context.Context, prompt string) (string, error) {
	var out string
	if err := k.call(ctx, "selectFile", promptPayload{Prompt: prompt}, &out); err != nil {
		return "", err
	}
	return out, nil
}

// SelectFolder opens the host's folder picker and returns the chosen path.
func (k *Kit) SelectFolder(ctx context.Context, prompt string) (string, error) {
	var out string
	if err := k.call(ctx, "selectFolder", promptPayload{Prompt: prompt}, &out); err != nil {
		return "", err
	}
	return out, nil
}

type notifyPayload struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// Notify shows a desktop notification.
func (k *Kit) Notify(ctx context.Context, title, body string) error {
	return k.call(ctx, "notify", notifyPayload{Title: title, Body: body}, nil)
}

type sayPayload struct {
	Text string `json:"text"`
}

// Say speaks the text through the host's text-to-speech voice.
func (k *Kit) Say(ctx context.Context, text string) error {
	return k.call(ctx, "say", sayPayload{Text: text}, nil)
}

// ClipboardRead returns the current clipboard text.
func (k *Kit) ClipboardRead(ctx context.Context) (string, error) {
	var out string
	if err := k.call(ctx, "clipboard.read", nil, &out); err != nil {
		return "", err
	}
	return out, nil
}

type clipboardWritePayload struct {
	Text string `json:"text"`
}

// ClipboardWrite replaces the clipboard contents.
func (k *Kit) ClipboardWrite(ctx context.Context, text string) error {
	return k.call(ctx, "clipboard.write", clipboardWritePayload{Text: text}, nil)
}

type openPayload struct {
	Target string `json:"target"`
}

// Open hands a URL or filesystem path to the operating system's default
// handler.
func (k *Kit) Open(ctx context.Context, target string) error {
	return k.call(ctx, "open", openPayload{Target: target}, nil)
}
