package router

import (
	"flightlist-service/internal/usecase"
	"flightlist-service/pkg/logger"
)

// ActionRouter routes wire actions to the appropriate handler by action type
type ActionRouter struct {
	handlers []usecase.ActionHandler
	logger   logger.Logger
}

// NewActionRouter creates a new action router
func NewActionRouter(logger logger.Logger) *ActionRouter {
	return &ActionRouter{
		handlers: make([]usecase.ActionHandler, 0),
		logger:   logger,
	}
}

// NewDefaultActionRouter creates a router with every built-in action handler registered
func NewDefaultActionRouter(logger logger.Logger) *ActionRouter {
	r := NewActionRouter(logger)
	for _, h := range usecase.DefaultActionHandlers() {
		r.Register(h)
	}
	return r
}

// Register registers a handler
func (r *ActionRouter) Register(handler usecase.ActionHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Debug("Registered action handler", "handler", handler)
}

// GetHandler returns the first handler accepting actionType
func (r *ActionRouter) GetHandler(actionType string) usecase.ActionHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(actionType) {
			return handler
		}
	}
	return nil
}
