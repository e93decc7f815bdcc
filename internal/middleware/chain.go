// Package middleware holds the HTTP middleware stack of the preview server.
//
// Middlewares wrap in the onion model: the first one added sees the request
// first and the response last.
package middleware

import (
	"fmt"
	"net/http"
)

// Middleware represents a single middleware function
type Middleware func(http.Handler) http.Handler

// Chain composes middlewares in the order they were added.
type Chain struct {
	middlewares []Middleware
}

// NewChain creates a chain holding the given middlewares.
func NewChain(middlewares ...Middleware) *Chain {
	chain := &Chain{middlewares: make([]Middleware, 0, len(middlewares))}
	for _, m := range middlewares {
		chain.Use(m)
	}
	return chain
}

// Use appends a middleware. It becomes the innermost wrapper so far.
func (c *Chain) Use(middleware Middleware) {
	if middleware == nil {
		return
	}
	c.middlewares = append(c.middlewares, middleware)
}

// Len returns the number of middlewares in the chain.
func (c *Chain) Len() int {
	return len(c.middlewares)
}

// Apply wraps handler with every middleware. Passing a nil handler is a
// programming error and panics.
func (c *Chain) Apply(handler http.Handler) http.Handler {
	if handler == nil {
		panic("middleware.Chain.Apply: handler cannot be nil")
	}

	wrapped := handler
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		wrapped = c.middlewares[i](wrapped)
		if wrapped == nil {
			panic(fmt.Sprintf("middleware.Chain.Apply: middleware at index %d returned nil handler", i))
		}
	}
	return wrapped
}
