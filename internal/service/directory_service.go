package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/softphone-backend/internal/bus"
)

// DirectoryService serves the presence data merged into the users endpoint.
type DirectoryService struct {
	broker bus.Broker
	logger *zap.Logger
}

// NewDirectoryService builds the service.
func NewDirectoryService(broker bus.Broker, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{broker: broker, logger: logger}
}

// UserStates returns the latest users-state broadcast. A cache miss or a
// broker failure degrades to an empty list.
func (s *DirectoryService) UserStates(ctx context.Context) json.RawMessage {
	if s.broker == nil {
		return json.RawMessage("[]")
	}
	payload, err := s.broker.Latest(ctx, bus.ChannelUsersState)
	if err != nil {
		s.logger.Warn("users-state cache unavailable", zap.Error(err))
		return json.RawMessage("[]")
	}
	if len(payload) == 0 || !json.Valid(payload) {
		return json.RawMessage("[]")
	}
	return payload
}
