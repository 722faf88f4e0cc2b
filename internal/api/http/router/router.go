// Package router assembles the HTTP routing tree.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/telemark/telemark-server/internal/api/http/handler"
	"github.com/telemark/telemark-server/internal/api/http/middleware"
	"github.com/telemark/telemark-server/internal/logger"
	"github.com/telemark/telemark-server/internal/model"
)

// Router wires handlers and middleware into the /api routing tree.
type Router struct {
	customerHandler *handler.Customer
	fileHandler     *handler.File
	queryHandler    *handler.Query
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// New creates a Router over the given handlers.
func New(
	customerHandler *handler.Customer,
	fileHandler *handler.File,
	queryHandler *handler.Query,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		customerHandler: customerHandler,
		fileHandler:     fileHandler,
		queryHandler:    queryHandler,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// Register builds the routing tree. Every /api route runs behind the
// request logging and operator identity middleware.
func (r *Router) Register() http.Handler {
	mux := chi.NewRouter()

	logging := middleware.NewLogging(r.logger)
	operator := middleware.NewOperator(r.contextManager, r.logger)

	mux.Route("/api", func(api chi.Router) {
		api.Use(logging.Handle)
		api.Use(operator.Handle)

		r.customerHandler.Register(api)
		r.fileHandler.Register(api)
		r.queryHandler.Register(api)
	})

	return mux
}
