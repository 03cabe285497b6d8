package contactform

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-contactform/pkg/openapi"
)

// Contract builds the OpenAPI description of the contact submission.
func Contract(options ...pkgopenapi.Option) (*openapi3.T, error) {
	return pkgopenapi.Build(options...)
}

// LoadContract parses and validates a JSON or YAML contract.
func LoadContract(ctx context.Context, data []byte) (*openapi3.T, error) {
	return pkgopenapi.Load(ctx, data)
}
