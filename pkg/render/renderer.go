package render

import (
	"context"
)

// Renderer turns a contact Document into a byte representation (HTML, a
// serialized terminal submission, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc Document) ([]byte, error)
}
