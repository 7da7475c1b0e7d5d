package crm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/softphone-backend/internal/crm"
)

func TestCallerIDSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getcallerid", r.URL.Path)
		assert.Equal(t, "4952293042", r.URL.Query().Get("number"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"result": "Success",
			"data": {
				"client": "Acme LLC",
				"contact": "Ivan Petrov",
				"ref": "crm-77",
				"number_format": "+7 495 229-30-42",
				"is_employee": "1"
			}
		}`))
	}))
	defer srv.Close()

	client := crm.NewClient(srv.URL, time.Second, nil)
	got := client.CallerID(context.Background(), "4952293042")
	require.NotNil(t, got)
	assert.Equal(t, "Acme LLC", got.Client)
	assert.Equal(t, "Ivan Petrov", got.Contact)
	assert.Equal(t, "crm-77", got.Ref)
	assert.Equal(t, "+7 495 229-30-42", got.NumberFormat)
	assert.True(t, got.IsEmployee)
}

func TestCallerIDMiss(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"non-success result", `{"result":"Error","data":{"client":"x"}}`},
		{"empty data", `{"result":"Success","data":{}}`},
		{"no data field", `{"result":"Success"}`},
		{"not json", `<html>gateway error</html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := crm.NewClient(srv.URL, time.Second, nil)
			assert.Nil(t, client.CallerID(context.Background(), "4952293042"))
		})
	}
}

func TestCallerIDTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := crm.NewClient(srv.URL, time.Second, nil)
	assert.Nil(t, client.CallerID(context.Background(), "4952293042"))
}

func TestCallerIDTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := crm.NewClient(srv.URL, 50*time.Millisecond, nil)
	start := time.Now()
	assert.Nil(t, client.CallerID(context.Background(), "4952293042"))
	assert.Less(t, time.Since(start), time.Second, "lookup must give up at its own timeout")
}
