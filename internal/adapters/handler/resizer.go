// Package handler turns raw bus messages into operation calls and
// replies. It is transport-agnostic: bytes in, bytes out.
package handler

import (
	"context"
	"encoding/json"

	"imgbus/internal/core/domain"
	"imgbus/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Resizer struct {
	operations port.OperationRegistry
}

func NewResizer(operations port.OperationRegistry) *Resizer {
	return &Resizer{operations: operations}
}

// Handle decodes the request payload, dispatches it to the operation
// registered for its action and returns the marshalled reply. Every
// failure, including an unparseable payload, yields an error reply.
func (h *Resizer) Handle(ctx context.Context, payload []byte) []byte {
	requestID, _ := uuid.NewV4()
	l := log.With().Str("requestId", requestID.String()).Logger()

	var request domain.Request
	if err := json.Unmarshal(payload, &request); err != nil {
		l.Warn().Err(err).Msg("received unparseable request")
		return marshal(l, domain.Failure(domain.ErrInvalidAction))
	}

	operation, err := h.operations.Get(request.Action)
	if err != nil {
		l.Warn().Str("action", request.Action).Msg("no operation for action")
		return marshal(l, domain.Failure(err))
	}

	l.Debug().Str("action", request.Action).Str("src", request.Src).Msg("dispatching request")

	return marshal(l, operation.Execute(ctx, &request))
}

func marshal(l zerolog.Logger, reply *domain.Reply) []byte {
	data, err := json.Marshal(reply)
	if err != nil {
		l.Error().Err(err).Msg("failed to marshal reply")
		return []byte(`{"status":"error","message":"Error processing image."}`)
	}

	return data
}
