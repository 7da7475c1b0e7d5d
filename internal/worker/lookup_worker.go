package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/softphone-backend/internal/bus"
	"github.com/spec-kit/softphone-backend/internal/crm"
	"github.com/spec-kit/softphone-backend/internal/domain"
	"github.com/spec-kit/softphone-backend/internal/observability"
	"github.com/spec-kit/softphone-backend/internal/queue"
	"github.com/spec-kit/softphone-backend/internal/repository"
)

// Command kinds the worker serves. Unknown kinds are rejected, never
// silently dropped.
const (
	CommandFindClientByPhone = "find_client_by_phone"
	CommandPing              = "ping"
)

// ContactStaleness is how long a phonebook row stays authoritative before a
// lookup re-queries the CRM.
const ContactStaleness = time.Hour

// CommandFunc handles one registered command.
type CommandFunc func(ctx context.Context, job queue.Job) *queue.Result

// LookupWorker is the long-lived caller-lookup process: it consumes jobs one
// at a time from its tube, resolves numbers against the CRM, maintains the
// phonebook and republishes results on the contacts channel. A separate ping
// tube is served concurrently so liveness checks never wait behind a job.
type LookupWorker struct {
	queue     queue.Queue
	contacts  repository.ContactRepository
	crm       crm.Lookup
	publisher bus.Publisher
	logger    *zap.Logger

	jobsTube string
	pingTube string

	staleness time.Duration
	now       func() time.Time

	commands map[string]CommandFunc
}

// New builds a worker with the standard command table.
func New(q queue.Queue, contacts repository.ContactRepository, lookup crm.Lookup, publisher bus.Publisher, jobsTube, pingTube string, logger *zap.Logger) *LookupWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &LookupWorker{
		queue:     q,
		contacts:  contacts,
		crm:       lookup,
		publisher: publisher,
		logger:    logger,
		jobsTube:  jobsTube,
		pingTube:  pingTube,
		staleness: ContactStaleness,
		now:       time.Now,
	}
	w.commands = map[string]CommandFunc{
		CommandFindClientByPhone: w.findClientByPhone,
	}
	return w
}

// Run consumes jobs until the context is canceled.
func (w *LookupWorker) Run(ctx context.Context) error {
	w.logger.Info("starting", zap.String("tube", w.jobsTube))

	if w.pingTube != "" {
		go w.servePing(ctx)
	}
	return w.queue.Consume(ctx, w.jobsTube, w.Handle)
}

// Handle dispatches one job through the command table.
func (w *LookupWorker) Handle(ctx context.Context, job queue.Job) *queue.Result {
	cmd, ok := w.commands[job.Kind]
	if !ok {
		w.logger.Warn("unknown command", zap.String("kind", job.Kind), zap.String("job_id", job.ID))
		observability.CountLookupJob(job.Kind, "unknown")
		return &queue.Result{Kind: job.Kind, Error: fmt.Sprintf("unknown command: %s", job.Kind)}
	}

	res := cmd(ctx, job)
	outcome := "ok"
	if res != nil && !res.OK {
		outcome = "empty"
	}
	observability.CountLookupJob(job.Kind, outcome)
	return res
}

func (w *LookupWorker) servePing(ctx context.Context) {
	err := w.queue.Consume(ctx, w.pingTube, func(_ context.Context, job queue.Job) *queue.Result {
		w.logger.Debug("ping", zap.String("job_id", job.ID))
		return &queue.Result{OK: true, Kind: CommandPing}
	})
	if err != nil && ctx.Err() == nil {
		w.logger.Warn("ping tube closed", zap.Error(err))
	}
}

// findClientByPhone resolves one number: normalize, check the phonebook,
// consult the CRM when the row is absent or stale, persist fresh data, and
// republish whatever record exists.
func (w *LookupWorker) findClientByPhone(ctx context.Context, job queue.Job) *queue.Result {
	if len(job.Args) == 0 || job.Args[0] == "" {
		return &queue.Result{Kind: job.Kind, Error: "missing number argument"}
	}

	number := domain.PhoneIndex(job.Args[0])
	w.logger.Info("find phone", zap.String("number", number))

	record, err := w.contacts.GetByNumber(ctx, number)
	if err != nil {
		w.logger.Warn("phonebook read failed", zap.String("number", number), zap.Error(err))
		return &queue.Result{Kind: job.Kind, Error: "phonebook unavailable"}
	}

	now := w.now().Unix()

	var fresh *crm.CallerID
	if record == nil || now-record.Changed > int64(w.staleness.Seconds()) {
		fresh = w.crm.CallerID(ctx, number)
	}

	if fresh != nil {
		if record == nil {
			w.logger.Info("new contact", zap.String("number", number))
			record = &domain.Contact{Number: number, Created: now}
		}
		record.Changed = now
		record.Client = fresh.Client
		record.Contact = fresh.Contact
		record.Ref = fresh.Ref
		record.NumberRep = fresh.NumberFormat
		record.IsEmployee = fresh.IsEmployee

		if err := w.contacts.Save(ctx, record); err != nil {
			w.logger.Warn("phonebook write failed", zap.String("number", number), zap.Error(err))
			return &queue.Result{Kind: job.Kind, Error: "phonebook unavailable"}
		}
	}

	// Republish an existing record even when no fresh CRM data arrived.
	if record != nil {
		if err := w.publisher.PublishContact(ctx, record); err != nil {
			w.logger.Debug("contact publish failed", zap.String("number", number), zap.Error(err))
		}
		return &queue.Result{OK: true, Kind: job.Kind, Contact: record}
	}
	return &queue.Result{Kind: job.Kind}
}
