package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/softphone-backend/internal/domain"
)

// Job is the typed envelope carried through a tube. ReplyTo names the
// requester's reply inbox when a result is expected.
type Job struct {
	ID      string   `json:"id"`
	Kind    string   `json:"kind"`
	Args    []string `json:"args,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// Result is the schema-typed reply envelope. There is no generic
// deserialization: only the fields below ever cross the wire.
type Result struct {
	OK      bool            `json:"ok"`
	Kind    string          `json:"kind,omitempty"`
	Contact *domain.Contact `json:"contact,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Handler processes one consumed job. A nil result suppresses the reply.
type Handler func(ctx context.Context, job Job) *Result

// Queue is the job transport: fire-and-forget publish, bounded
// request/reply, and a blocking consume loop.
type Queue interface {
	Publish(ctx context.Context, tube string, job Job) error
	Request(ctx context.Context, tube string, job Job, timeout time.Duration) (Result, error)
	Consume(ctx context.Context, tube string, handle Handler) error
}

// DefaultReplyTimeout bounds request/reply round trips.
const DefaultReplyTimeout = 20 * time.Second

// Client is the caller-side invoke helper.
type Client struct {
	queue   Queue
	tube    string
	timeout time.Duration
}

// NewClient builds an invoke helper targeting one tube.
func NewClient(q Queue, tube string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultReplyTimeout
	}
	return &Client{queue: q, tube: tube, timeout: timeout}
}

// Invoke dispatches a command to the worker process. With needReply the call
// blocks up to the reply timeout; any failure during the round trip resolves
// to an empty result rather than an error.
func (c *Client) Invoke(ctx context.Context, kind string, args []string, needReply bool) Result {
	job := Job{ID: uuid.NewString(), Kind: kind, Args: args}

	if !needReply {
		if err := c.queue.Publish(ctx, c.tube, job); err != nil {
			return Result{Kind: kind, Error: err.Error()}
		}
		return Result{OK: true, Kind: kind}
	}

	res, err := c.queue.Request(ctx, c.tube, job, c.timeout)
	if err != nil {
		return Result{Kind: kind}
	}
	return res
}
