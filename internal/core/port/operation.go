package port

import (
	"context"

	"imgbus/internal/core/domain"
)

type Operation interface {
	// Execute runs the operation for the given request and returns the
	// reply to publish, success or failure. It never returns nil.
	Execute(ctx context.Context, request *domain.Request) *domain.Reply
	// GetAction retrieves the action tag this operation handles.
	GetAction() string
}

type OperationRegistry interface {
	// Register adds an operation to the registry.
	Register(operation Operation)
	// Get retrieves the operation registered for an action tag or
	// returns an error if there is none.
	Get(action string) (Operation, error)
	// ListActions returns all registered action tags.
	ListActions() []string
}
