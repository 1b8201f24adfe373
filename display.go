package skit

import "context"

type divPayload struct {
	HTML string `json:"html"`
}

// Div renders an HTML fragment in the host's display panel.
func (k *Kit) Div(ctx context.Context, html string) error {
	return k.call(ctx, "div", divPayload{HTML: html}, nil)
}

type mdPayload struct {
	Markdown string `json:"markdown"`
}

// Md renders markdown in the host's display panel.
func (k *Kit) Md(ctx context.Context, markdown string) error {
	return k.call(ctx, "md", mdPayload{Markdown: markdown}, nil)
}
