// Package api holds the OpenAPI contract of the HTTP surface.
package api

import _ "embed"

// OpenAPISpec is the raw openapi.yml document.
//
//go:embed openapi.yml
var OpenAPISpec []byte
