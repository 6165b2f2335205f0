// Package docs registers the OpenAPI document with swag so that echo-swagger can
// serve it under /swagger/doc.json.
package docs

import (
	"encoding/json"

	"couriertracking/internal/generated/servers"

	"github.com/swaggo/swag"
)

type openAPIDoc struct{}

// ReadDoc returns the OpenAPI document as JSON, or an empty object when it cannot be loaded.
func (openAPIDoc) ReadDoc() string {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return "{}"
	}
	body, err := json.Marshal(swagger)
	if err != nil {
		return "{}"
	}
	return string(body)
}

func init() {
	swag.Register(swag.Name, openAPIDoc{})
}
