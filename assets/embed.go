// assets/embed.go
//
// Embedded default lesson content, used when no CONTENT_FILE is configured.

package assets

import _ "embed"

//go:embed content.json
var DefaultContent []byte
