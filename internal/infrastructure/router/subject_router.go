package router

import (
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"
)

// SubjectRouter routes incoming feeds to appropriate handlers based on the
// mail subject
type SubjectRouter struct {
	handlers []usecase.FeedHandler
	logger   logger.Logger
}

// NewSubjectRouter creates a new subject router
func NewSubjectRouter(logger logger.Logger) *SubjectRouter {
	return &SubjectRouter{
		handlers: make([]usecase.FeedHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for specific subject patterns
func (r *SubjectRouter) Register(handler usecase.FeedHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered feed handler", "handler", handler)
}

// GetHandler returns the appropriate handler for a given subject
func (r *SubjectRouter) GetHandler(subject string) usecase.FeedHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(subject) {
			return handler
		}
	}
	return nil
}
