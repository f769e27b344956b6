// Package api embeds the OpenAPI document served and enforced by the HTTP adapter.
package api

import _ "embed"

//go:embed openapi.yaml
var spec []byte

// Spec returns the raw OpenAPI document.
func Spec() []byte {
	return spec
}
