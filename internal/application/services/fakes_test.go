package services

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rabbitmq/amqp091-go"

	"media-fetch-api/internal/application/ports"
	download "media-fetch-api/internal/domain/download"
	"media-fetch-api/internal/domain/quota"
	"media-fetch-api/internal/infrastructure/mq"
)

// newTestCounter avoids promauto's default-registry registration so every
// test can hold its own vector.
func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_counters"},
		[]string{"result"},
	)
}

func counterValue(vec *prometheus.CounterVec, label string) float64 {
	return testutil.ToFloat64(vec.WithLabelValues(label))
}

type FakeQuotaRepository struct {
	FetchQuotaFunc     func(ctx context.Context, userID int64) (*quota.Quota, error)
	RecordDownloadFunc func(ctx context.Context, userID int64, userName string, day time.Time) (*quota.Quota, error)
}

func (f *FakeQuotaRepository) FetchQuota(ctx context.Context, userID int64) (*quota.Quota, error) {
	if f.FetchQuotaFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchQuotaFunc(ctx, userID)
}

func (f *FakeQuotaRepository) RecordDownload(ctx context.Context, userID int64, userName string, day time.Time) (*quota.Quota, error) {
	if f.RecordDownloadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RecordDownloadFunc(ctx, userID, userName, day)
}

type FakeDownloadRepository struct {
	CreateRecordFunc func(ctx context.Context, req *download.Record) (*download.Record, error)
	MarkSentFunc     func(ctx context.Context, id download.ID) error
	MarkDeletedFunc  func(ctx context.Context, id download.ID) error
	FetchExpiredFunc func(ctx context.Context, cutoff time.Time) (download.Records, error)
	FetchRecentFunc  func(ctx context.Context, page int) (download.Records, error)
}

func (f *FakeDownloadRepository) CreateRecord(ctx context.Context, req *download.Record) (*download.Record, error) {
	if f.CreateRecordFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateRecordFunc(ctx, req)
}

func (f *FakeDownloadRepository) MarkSent(ctx context.Context, id download.ID) error {
	if f.MarkSentFunc == nil {
		return errors.New("not used")
	}
	return f.MarkSentFunc(ctx, id)
}

func (f *FakeDownloadRepository) MarkDeleted(ctx context.Context, id download.ID) error {
	if f.MarkDeletedFunc == nil {
		return errors.New("not used")
	}
	return f.MarkDeletedFunc(ctx, id)
}

func (f *FakeDownloadRepository) FetchExpired(ctx context.Context, cutoff time.Time) (download.Records, error) {
	if f.FetchExpiredFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchExpiredFunc(ctx, cutoff)
}

func (f *FakeDownloadRepository) FetchRecent(ctx context.Context, page int) (download.Records, error) {
	if f.FetchRecentFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchRecentFunc(ctx, page)
}

type FakeLedger struct {
	CanDownloadFunc    func(ctx context.Context, userID int64) (bool, string, error)
	RecordDownloadFunc func(ctx context.Context, userID int64, userName string) (*quota.Quota, error)
	StatsFunc          func(ctx context.Context, userID int64) (*quota.Stats, error)
}

func (f *FakeLedger) CanDownload(ctx context.Context, userID int64) (bool, string, error) {
	if f.CanDownloadFunc == nil {
		return true, "", nil
	}
	return f.CanDownloadFunc(ctx, userID)
}

func (f *FakeLedger) RecordDownload(ctx context.Context, userID int64, userName string) (*quota.Quota, error) {
	if f.RecordDownloadFunc == nil {
		return &quota.Quota{UserID: userID, UserName: userName}, nil
	}
	return f.RecordDownloadFunc(ctx, userID, userName)
}

func (f *FakeLedger) Stats(ctx context.Context, userID int64) (*quota.Stats, error) {
	if f.StatsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.StatsFunc(ctx, userID)
}

type FakeCatalog struct {
	CreateRecordFunc func(ctx context.Context, req *download.Record) (*download.Record, error)
	MarkSentFunc     func(ctx context.Context, id download.ID) error
	GetUserStatsFunc func(ctx context.Context, userID int64) (*quota.Stats, error)
	RecentFunc       func(ctx context.Context, page int) (download.Records, error)
}

func (f *FakeCatalog) CreateRecord(ctx context.Context, req *download.Record) (*download.Record, error) {
	if f.CreateRecordFunc == nil {
		rec := *req
		rec.ID = 1
		rec.DownloadTime = time.Now()
		return &rec, nil
	}
	return f.CreateRecordFunc(ctx, req)
}

func (f *FakeCatalog) MarkSent(ctx context.Context, id download.ID) error {
	if f.MarkSentFunc == nil {
		return nil
	}
	return f.MarkSentFunc(ctx, id)
}

func (f *FakeCatalog) GetUserStats(ctx context.Context, userID int64) (*quota.Stats, error) {
	if f.GetUserStatsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.GetUserStatsFunc(ctx, userID)
}

func (f *FakeCatalog) Recent(ctx context.Context, page int) (download.Records, error) {
	if f.RecentFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RecentFunc(ctx, page)
}

type FakeExtractor struct {
	ExtractFunc func(ctx context.Context, url string, opts ports.ExtractOptions) (*ports.ExtractResult, error)
	Calls       []ports.ExtractOptions
}

func (f *FakeExtractor) Extract(ctx context.Context, url string, opts ports.ExtractOptions) (*ports.ExtractResult, error) {
	f.Calls = append(f.Calls, opts)
	if f.ExtractFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ExtractFunc(ctx, url, opts)
}

type FakeDeliverer struct {
	DeliverFunc func(ctx context.Context, d ports.Delivery) error
	Delivered   []ports.Delivery
}

func (f *FakeDeliverer) Deliver(ctx context.Context, d ports.Delivery) error {
	f.Delivered = append(f.Delivered, d)
	if f.DeliverFunc == nil {
		return nil
	}
	return f.DeliverFunc(ctx, d)
}

// FakeRabbit buffers published events so tests can assert on them.
type FakeRabbit struct {
	in chan mq.Event
}

func NewFakeRabbit() *FakeRabbit {
	return &FakeRabbit{in: make(chan mq.Event, 16)}
}

func (f *FakeRabbit) Connect(ctx context.Context, dsn string) error { return nil }
func (f *FakeRabbit) Init() error                                   { return nil }
func (f *FakeRabbit) PublisherWorker(ctx context.Context)           {}
func (f *FakeRabbit) GetInputChan() chan mq.Event                   { return f.in }
func (f *FakeRabbit) GetConn() *amqp091.Connection                  { return nil }

func (f *FakeRabbit) Events() []mq.Event {
	var evs []mq.Event
	for {
		select {
		case e := <-f.in:
			evs = append(evs, e)
		default:
			return evs
		}
	}
}
