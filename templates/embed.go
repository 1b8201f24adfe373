// Package templates embeds the script, wrapper, probe and harness templates.
package templates

import "embed"

//go:embed *.tmpl
var TemplatesFS embed.FS
