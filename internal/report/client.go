package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Filter selects the CDR slice to fetch.
type Filter struct {
	From   time.Time
	To     time.Time
	Search string
}

// CallLeg is one leg of a multi-leg call.
type CallLeg struct {
	SrcNum string `json:"src_num"`
	DstNum string `json:"dst_num"`
}

// CallRecord is one CDR row as served by the report upstream.
type CallRecord struct {
	Start     string    `json:"start"`
	Src       string    `json:"src"`
	Dst       string    `json:"dst"`
	BillSec   int       `json:"billsec"`
	Answered  bool      `json:"answered"`
	Recording string    `json:"recording,omitempty"`
	Legs      []CallLeg `json:"legs,omitempty"`
}

// Client fetches call history from the report upstream.
type Client interface {
	History(ctx context.Context, filter Filter) ([]CallRecord, error)
}

// HTTPClient talks to the extended-CDR report service.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a report client. A non-positive timeout defaults to 1s.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &HTTPClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// History performs GET /history. The upstream serves either a bare row array
// or an envelope with a data key; both are accepted.
func (c *HTTPClient) History(ctx context.Context, filter Filter) ([]CallRecord, error) {
	if c.baseURL == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("from", filter.From.Format("02/01/2006"))
	params.Set("to", filter.To.Format("02/01/2006"))
	params.Set("search", filter.Search)
	params.Set("type", "all-calls")
	params.Set("min_billsec", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/history?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("report upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("report upstream: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("report upstream: %w", err)
	}

	var envelope struct {
		Data []CallRecord `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var rows []CallRecord
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("report upstream: %w", err)
	}
	return rows, nil
}
