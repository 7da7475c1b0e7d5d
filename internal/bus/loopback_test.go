package bus_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/softphone-backend/internal/bus"
	"github.com/spec-kit/softphone-backend/internal/domain"
)

func TestPublishContactPostsToPubEndpoint(t *testing.T) {
	var gotPath string
	var gotContact domain.Contact
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotContact))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	p := bus.NewLoopbackPublisher(srv.URL, nil)
	err := p.PublishContact(context.Background(), &domain.Contact{Number: "4952293042", Client: "Acme LLC"})
	require.NoError(t, err)

	assert.Equal(t, "/pub/contacts", gotPath)
	assert.Equal(t, "4952293042", gotContact.Number)
	assert.Equal(t, "Acme LLC", gotContact.Client)
}

func TestPublishSwallowsTransportFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	p := bus.NewLoopbackPublisher(srv.URL, nil)
	assert.NoError(t, p.PublishContact(context.Background(), &domain.Contact{Number: "201"}))
	assert.NoError(t, p.PublishUserStates(context.Background(), []string{"201"}))
	assert.NoError(t, p.PublishActiveCalls(context.Background(), nil))
}
