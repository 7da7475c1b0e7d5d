package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/softphone-backend/internal/observability"
)

// CallerID is the identity the CRM knows for a phone number.
type CallerID struct {
	Client       string
	Contact      string
	Ref          string
	NumberFormat string
	IsEmployee   bool
}

// Lookup resolves a phone number against the CRM. A nil result means "no
// data": transport failures and misses look the same to callers.
type Lookup interface {
	CallerID(ctx context.Context, number string) *CallerID
}

// Client is the HTTP CRM lookup. The timeout covers connect and the whole
// call; callers never wait longer than that for the network portion.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a lookup client. A non-positive timeout defaults to 1s.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// CallerID performs GET /getcallerid?number=N. Any failure degrades to nil.
func (c *Client) CallerID(ctx context.Context, number string) *CallerID {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/getcallerid?number="+url.QueryEscape(number), nil)
	if err != nil {
		observability.CountCRMRequest("error")
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		observability.CountCRMRequest("error")
		c.logger.Debug("crm lookup failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	var body struct {
		Result string         `json:"result"`
		Data   map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		observability.CountCRMRequest("error")
		return nil
	}
	if body.Result != "Success" || len(body.Data) == 0 {
		observability.CountCRMRequest("miss")
		return nil
	}

	observability.CountCRMRequest("hit")
	return &CallerID{
		Client:       stringField(body.Data, "client"),
		Contact:      stringField(body.Data, "contact"),
		Ref:          stringField(body.Data, "ref"),
		NumberFormat: stringField(body.Data, "number_format"),
		IsEmployee:   boolField(body.Data, "is_employee"),
	}
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func boolField(data map[string]any, key string) bool {
	switch v := data[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != "" && v != "0"
	default:
		return false
	}
}
