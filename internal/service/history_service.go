package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/softphone-backend/internal/domain"
	"github.com/spec-kit/softphone-backend/internal/queue"
	"github.com/spec-kit/softphone-backend/internal/report"
	"github.com/spec-kit/softphone-backend/internal/repository"
	"github.com/spec-kit/softphone-backend/internal/worker"
)

// LookupDispatcher hands caller-lookup commands to the worker process.
// Satisfied by queue.Client.
type LookupDispatcher interface {
	Invoke(ctx context.Context, kind string, args []string, needReply bool) queue.Result
}

// HistoryService fetches a user's call history and warms the phonebook for
// every number it saw.
type HistoryService struct {
	reports    report.Client
	extensions repository.ExtensionRepository
	lookups    LookupDispatcher
	logger     *zap.Logger
}

// NewHistoryService builds the service.
func NewHistoryService(reports report.Client, extensions repository.ExtensionRepository, lookups LookupDispatcher, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{reports: reports, extensions: extensions, lookups: lookups, logger: logger}
}

// History returns one day of records for the user. Report-upstream
// unavailability degrades to an empty history rather than failing the
// request. Each distinct phone index seen in the records gets a
// fire-and-forget caller lookup so the contact broadcast stays warm.
func (s *HistoryService) History(ctx context.Context, username string, day time.Time) []report.CallRecord {
	if s.reports == nil {
		return []report.CallRecord{}
	}

	records, err := s.reports.History(ctx, report.Filter{
		From:   day,
		To:     day.AddDate(0, 0, 1),
		Search: username,
	})
	if err != nil {
		s.logger.Warn("report upstream unavailable", zap.Error(err))
		return []report.CallRecord{}
	}
	if records == nil {
		records = []report.CallRecord{}
	}

	if s.lookups != nil {
		for _, number := range CollectNumbers(records) {
			s.lookups.Invoke(ctx, worker.CommandFindClientByPhone, []string{number}, false)
		}
	}
	return records
}

// Mobile resolves the external number bound to the user's extension; lookup
// failures degrade to an empty string.
func (s *HistoryService) Mobile(ctx context.Context, username string) string {
	if s.extensions == nil {
		return ""
	}
	mobile, err := s.extensions.MobileForExtension(ctx, username)
	if err != nil {
		s.logger.Warn("mobile lookup failed", zap.String("username", username), zap.Error(err))
		return ""
	}
	return mobile
}

// CollectNumbers extracts every src/dst/leg number from the records, de-duped
// by phone index, in first-seen order.
func CollectNumbers(records []report.CallRecord) []string {
	seen := make(map[string]struct{})
	var numbers []string

	add := func(value string) {
		if value == "" {
			return
		}
		idx := domain.PhoneIndex(value)
		if idx == "" {
			return
		}
		if _, ok := seen[idx]; ok {
			return
		}
		seen[idx] = struct{}{}
		numbers = append(numbers, idx)
	}

	for _, rec := range records {
		add(rec.Src)
		add(rec.Dst)
		for _, leg := range rec.Legs {
			add(leg.SrcNum)
			add(leg.DstNum)
		}
	}
	return numbers
}
