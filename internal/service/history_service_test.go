package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/softphone-backend/internal/queue"
	"github.com/spec-kit/softphone-backend/internal/report"
	"github.com/spec-kit/softphone-backend/internal/service"
	"github.com/spec-kit/softphone-backend/internal/worker"
)

type fakeReports struct {
	records []report.CallRecord
	err     error
	filters []report.Filter
}

func (f *fakeReports) History(_ context.Context, filter report.Filter) ([]report.CallRecord, error) {
	f.filters = append(f.filters, filter)
	return f.records, f.err
}

type fakeExtensions struct {
	mobile string
	err    error
}

func (f *fakeExtensions) MobileForExtension(_ context.Context, _ string) (string, error) {
	return f.mobile, f.err
}

type recordedInvoke struct {
	kind      string
	args      []string
	needReply bool
}

type fakeDispatcher struct {
	invokes []recordedInvoke
}

func (f *fakeDispatcher) Invoke(_ context.Context, kind string, args []string, needReply bool) queue.Result {
	f.invokes = append(f.invokes, recordedInvoke{kind: kind, args: args, needReply: needReply})
	return queue.Result{OK: true, Kind: kind}
}

func TestHistoryWarmsPhonebook(t *testing.T) {
	reports := &fakeReports{records: []report.CallRecord{
		{Src: "201", Dst: "+7 (495) 229-30-42"},
		{Src: "84952293042", Dst: "201", Legs: []report.CallLeg{{SrcNum: "84952293042", DstNum: "202"}}},
	}}
	dispatcher := &fakeDispatcher{}
	svc := service.NewHistoryService(reports, nil, dispatcher, nil)

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	records := svc.History(context.Background(), "201", day)
	assert.Len(t, records, 2)

	require.Len(t, reports.filters, 1)
	assert.Equal(t, day, reports.filters[0].From)
	assert.Equal(t, day.AddDate(0, 0, 1), reports.filters[0].To)
	assert.Equal(t, "201", reports.filters[0].Search)

	require.Len(t, dispatcher.invokes, 3)
	var numbers []string
	for _, inv := range dispatcher.invokes {
		assert.Equal(t, worker.CommandFindClientByPhone, inv.kind)
		assert.False(t, inv.needReply)
		require.Len(t, inv.args, 1)
		numbers = append(numbers, inv.args[0])
	}
	assert.Equal(t, []string{"201", "4952293042", "202"}, numbers)
}

func TestHistoryDegradesOnUpstreamFailure(t *testing.T) {
	reports := &fakeReports{err: errors.New("upstream down")}
	dispatcher := &fakeDispatcher{}
	svc := service.NewHistoryService(reports, nil, dispatcher, nil)

	records := svc.History(context.Background(), "201", time.Now())
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Empty(t, dispatcher.invokes)
}

func TestHistoryWithoutUpstreamConfigured(t *testing.T) {
	svc := service.NewHistoryService(nil, nil, nil, nil)
	records := svc.History(context.Background(), "201", time.Now())
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestMobile(t *testing.T) {
	t.Run("resolved", func(t *testing.T) {
		svc := service.NewHistoryService(nil, &fakeExtensions{mobile: "9261234567"}, nil, nil)
		assert.Equal(t, "9261234567", svc.Mobile(context.Background(), "201"))
	})

	t.Run("lookup failure degrades", func(t *testing.T) {
		svc := service.NewHistoryService(nil, &fakeExtensions{err: errors.New("db down")}, nil, nil)
		assert.Empty(t, svc.Mobile(context.Background(), "201"))
	})

	t.Run("no repository", func(t *testing.T) {
		svc := service.NewHistoryService(nil, nil, nil, nil)
		assert.Empty(t, svc.Mobile(context.Background(), "201"))
	})
}

func TestCollectNumbers(t *testing.T) {
	records := []report.CallRecord{
		{Src: "201", Dst: "+7 (495) 229-30-42"},
		{Src: "8 (495) 229-30-42", Dst: ""},
		{Legs: []report.CallLeg{{SrcNum: "201"}, {DstNum: "anonymous"}}},
	}

	numbers := service.CollectNumbers(records)
	assert.Equal(t, []string{"201", "4952293042"}, numbers)
}
