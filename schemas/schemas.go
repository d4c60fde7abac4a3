// Package schemas embeds the JSON schemas of the events this service publishes.
package schemas

import "embed"

//go:embed events
var SchemasFS embed.FS
