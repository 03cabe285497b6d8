// Package openapi describes the contact submission as an OpenAPI 3 document:
// one POST operation at the form action whose request body carries the five
// contact fields with their length and pattern constraints. Documents are
// built and read back with kin-openapi.
package openapi
