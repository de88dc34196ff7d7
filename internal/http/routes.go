package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/t-lanigan/coffee-shop/internal/auth/domain"
	authHTTP "github.com/t-lanigan/coffee-shop/internal/auth/http"
	authService "github.com/t-lanigan/coffee-shop/internal/auth/service"
	drinksHTTP "github.com/t-lanigan/coffee-shop/internal/drinks/http"
)

// Route describes one API endpoint. An empty Permission marks a public route.
type Route struct {
	Method     string
	Path       string
	Permission authDomain.Permission
	Handler    gin.HandlerFunc
}

// Protected reports whether the route requires an authorized bearer token.
func (r Route) Protected() bool {
	return r.Permission != ""
}

// drinkRoutes returns the drinks API route table.
func drinkRoutes(h *drinksHTTP.DrinkHandler) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/drinks", Handler: h.ListHandler},
		{
			Method:     http.MethodGet,
			Path:       "/drinks-detail",
			Permission: authDomain.GetDrinksDetailPermission,
			Handler:    h.ListDetailHandler,
		},
		{
			Method:     http.MethodPost,
			Path:       "/drinks",
			Permission: authDomain.PostDrinksPermission,
			Handler:    h.CreateHandler,
		},
		{
			Method:     http.MethodPatch,
			Path:       "/drinks/:id",
			Permission: authDomain.PatchDrinksPermission,
			Handler:    h.UpdateHandler,
		},
		{
			Method:     http.MethodDelete,
			Path:       "/drinks/:id",
			Permission: authDomain.DeleteDrinksPermission,
			Handler:    h.DeleteHandler,
		},
	}
}

// registerRoutes mounts routes on router. Protected routes run the permission guard
// first and then the per-subject rate limiter, when one is given.
func registerRoutes(
	router gin.IRoutes,
	routes []Route,
	authorizer authService.TokenAuthorizer,
	rateLimiter gin.HandlerFunc,
	logger *slog.Logger,
) {
	for _, route := range routes {
		handlers := make([]gin.HandlerFunc, 0, 3)
		if route.Protected() {
			handlers = append(handlers, authHTTP.RequirePermission(authorizer, route.Permission.String(), logger))
			if rateLimiter != nil {
				handlers = append(handlers, rateLimiter)
			}
		}
		handlers = append(handlers, route.Handler)

		router.Handle(route.Method, route.Path, handlers...)
	}
}
