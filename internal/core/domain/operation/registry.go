package operation

import (
	"imgbus/internal/core/domain"
	"imgbus/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Registry dispatches incoming requests to operations by their action
// tag.
type Registry struct {
	operations map[string]port.Operation
}

func (r *Registry) Register(operation port.Operation) {
	if r.operations == nil {
		r.operations = make(map[string]port.Operation)
	}

	log.Info().Str("action", operation.GetAction()).Msg("adding operation to registry")
	r.operations[operation.GetAction()] = operation
}

func (r *Registry) Get(action string) (port.Operation, error) {
	if r.operations == nil {
		return nil, domain.ErrInvalidAction
	}

	operation, ok := r.operations[action]
	if !ok {
		return nil, domain.ErrInvalidAction
	}

	return operation, nil
}

func (r *Registry) ListActions() []string {
	actions := make([]string, 0, len(r.operations))
	for action := range r.operations {
		actions = append(actions, action)
	}

	return actions
}
