// Package router assembles the HTTP route table.
package router

import (
	"net/http"

	"github.com/reflora/server/internal/api/http/handler"
	"github.com/reflora/server/internal/api/http/middleware"
)

// New builds the API handler tree. Provisioning and login are public,
// everything else requires a valid access token.
func New(
	users *handler.User,
	companies *handler.Company,
	exports *handler.Export,
	auth *middleware.Auth,
	logging *middleware.Logging,
) http.Handler {
	mux := http.NewServeMux()

	public := func(h http.HandlerFunc) http.Handler {
		return logging.Log(h)
	}
	protected := func(h http.HandlerFunc) http.Handler {
		return logging.Log(auth.Authenticate(h))
	}

	mux.Handle("POST /api/v0/users", public(users.Create))
	mux.Handle("POST /api/v0/users/login", public(users.Login))

	mux.Handle("GET /api/v0/users", protected(users.List))
	mux.Handle("GET /api/v0/users/{id}", protected(users.Get))
	mux.Handle("DELETE /api/v0/users/{id}", protected(users.Delete))

	mux.Handle("POST /api/v0/users/export", protected(exports.Create))
	mux.Handle("GET /api/v0/users/export/{key...}", protected(exports.Download))
	mux.Handle("DELETE /api/v0/users/export/{key...}", protected(exports.Delete))

	mux.Handle("POST /api/v0/companies", protected(companies.Create))
	mux.Handle("GET /api/v0/companies", protected(companies.List))
	mux.Handle("GET /api/v0/companies/{id}", protected(companies.Get))

	return mux
}
