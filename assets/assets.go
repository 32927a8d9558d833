// Package assets embeds the static files served by the relay.
package assets

import _ "embed"

// StatusHTML is the raw relay status page; the server minifies it once at
// startup.
//
//go:embed status.html
var StatusHTML []byte
