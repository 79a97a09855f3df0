package gql

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// NewHandler serves schema over HTTP. POST runs operations; a browser GET
// gets the Playground when playground is true.
func NewHandler(schema graphql.Schema, playground bool) http.Handler {
	return handler.New(&handler.Config{
		Schema:     &schema,
		Pretty:     true,
		GraphiQL:   false,
		Playground: playground,
	})
}
