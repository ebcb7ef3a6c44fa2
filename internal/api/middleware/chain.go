package middleware

import "github.com/labstack/echo/v4"

// Chain is the ordered list of interceptors guarding one route. The first
// element runs first; any of them may end the request with an error.
type Chain []echo.MiddlewareFunc

// Use builds a Chain from interceptors in execution order.
func Use(interceptors ...echo.MiddlewareFunc) Chain {
	return interceptors
}

// Then wraps h so the chain runs before it.
func (ch Chain) Then(h echo.HandlerFunc) echo.HandlerFunc {
	for i := len(ch) - 1; i >= 0; i-- {
		h = ch[i](h)
	}
	return h
}
