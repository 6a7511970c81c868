// Package openapi embeds the OpenAPI document of the HTTP API and registers it
// with swag so that echo-swagger can serve it under /swagger/.
package openapi

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var document []byte

type doc struct{}

func (doc) ReadDoc() string {
	return string(document)
}

func init() {
	swag.Register(swag.Name, doc{})
}

// Document returns the raw OpenAPI document.
func Document() []byte {
	return document
}

// Load parses the embedded document and validates it against the OpenAPI 3
// schema.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	t, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err = t.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return t, nil
}
