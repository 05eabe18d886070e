// Package staffdesk embeds build-time assets for the UI gateway.
package staffdesk

import "embed"

// TemplateFS contains the HTML templates for server-rendered screens.
//
//go:embed web/templates
var TemplateFS embed.FS
