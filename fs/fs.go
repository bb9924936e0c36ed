// Package appfs embeds assets that ship with the binary.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
