package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/softphone-backend/internal/service"
)

type fakeBroker struct {
	latest map[string][]byte
	err    error
}

func (f *fakeBroker) Publish(_ context.Context, channel string, payload []byte) error {
	if f.latest == nil {
		f.latest = map[string][]byte{}
	}
	f.latest[channel] = payload
	return f.err
}

func (f *fakeBroker) Latest(_ context.Context, channel string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.latest[channel], nil
}

func TestUserStates(t *testing.T) {
	t.Run("returns cached payload", func(t *testing.T) {
		broker := &fakeBroker{latest: map[string][]byte{
			"users-state": []byte(`[{"user":"201","state":"idle"}]`),
		}}
		svc := service.NewDirectoryService(broker, nil)
		assert.JSONEq(t, `[{"user":"201","state":"idle"}]`, string(svc.UserStates(context.Background())))
	})

	t.Run("cache miss degrades", func(t *testing.T) {
		svc := service.NewDirectoryService(&fakeBroker{}, nil)
		assert.Equal(t, "[]", string(svc.UserStates(context.Background())))
	})

	t.Run("broker failure degrades", func(t *testing.T) {
		svc := service.NewDirectoryService(&fakeBroker{err: errors.New("redis down")}, nil)
		assert.Equal(t, "[]", string(svc.UserStates(context.Background())))
	})

	t.Run("invalid cached payload degrades", func(t *testing.T) {
		broker := &fakeBroker{latest: map[string][]byte{"users-state": []byte("{broken")}}
		svc := service.NewDirectoryService(broker, nil)
		assert.Equal(t, "[]", string(svc.UserStates(context.Background())))
	})

	t.Run("nil broker", func(t *testing.T) {
		svc := service.NewDirectoryService(nil, nil)
		assert.Equal(t, "[]", string(svc.UserStates(context.Background())))
	})
}
