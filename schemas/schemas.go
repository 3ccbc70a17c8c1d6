// Package schemas хранит JSON Schema исходящих событий сервиса.
package schemas

import "embed"

//go:embed events
var SchemasFS embed.FS
