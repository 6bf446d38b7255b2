package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ashrafz/foodshare-api/internal/api"
	apiMiddleware "github.com/ashrafz/foodshare-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. The route shapes mirror the original frontend contract, so
// paths like /addProduct and /products/status/{id} stay as they are.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.jwtService, app.config, app.logger)
	itemHandler := api.NewItemHandler(app.itemStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Session endpoints (public)
	r.Post("/jwt", authHandler.IssueToken)
	r.Post("/logout", authHandler.Logout)

	// Item endpoints
	r.Get("/products", itemHandler.ListItems)
	r.Get("/products/{id}", itemHandler.GetItem)
	r.Post("/addProduct", itemHandler.AddItem)
	r.Put("/products/{id}", itemHandler.ClaimItem)
	r.Patch("/products/{id}", itemHandler.EditItem)
	r.Patch("/products/status/{id}", itemHandler.UpdateItemStatus)
	r.Patch("/products/requesterEmail/{id}", itemHandler.UpdateItemRequesterEmail)
	r.Delete("/products/{id}", itemHandler.DeleteItem)
	r.Get("/request/user", itemHandler.ListItemsByRequester)

	// The owner listing is the one guarded route.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/products/user", itemHandler.ListItemsByOwner)
	})

	// Liveness endpoints
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("Food donation server running")); err != nil {
			app.logger.Error("Failed to write liveness response", "error", err)
		}
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
