package bus

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/softphone-backend/internal/domain"
)

// Publisher is what the lookup worker needs to broadcast a resolved contact.
type Publisher interface {
	PublishContact(ctx context.Context, contact *domain.Contact) error
}

// LoopbackPublisher posts broadcast payloads to the local API's pub
// endpoints, which are loopback-restricted. Calls are bounded at one second
// and failures are swallowed: a missed broadcast is not worth blocking a
// call-event pipeline for.
type LoopbackPublisher struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewLoopbackPublisher builds a publisher targeting the local API.
func NewLoopbackPublisher(baseURL string, logger *zap.Logger) *LoopbackPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoopbackPublisher{
		baseURL: baseURL,
		http:    &http.Client{Timeout: time.Second},
		logger:  logger,
	}
}

// PublishContact broadcasts a phonebook update.
func (p *LoopbackPublisher) PublishContact(ctx context.Context, contact *domain.Contact) error {
	return p.publish(ctx, ChannelContacts, contact)
}

// PublishUserStates broadcasts extension presence.
func (p *LoopbackPublisher) PublishUserStates(ctx context.Context, states any) error {
	return p.publish(ctx, ChannelUsersState, states)
}

// PublishActiveCalls broadcasts the active-call list.
func (p *LoopbackPublisher) PublishActiveCalls(ctx context.Context, calls any) error {
	return p.publish(ctx, ChannelActiveCalls, calls)
}

func (p *LoopbackPublisher) publish(ctx context.Context, channel string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Debug("publish encode failed", zap.String("channel", channel), zap.Error(err))
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/pub/"+channel, bytes.NewReader(body))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		p.logger.Debug("publish failed", zap.String("channel", channel), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()
	return nil
}
