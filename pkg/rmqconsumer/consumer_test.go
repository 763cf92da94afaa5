package rmqconsumer

import (
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"media-fetch-api/config"
	"media-fetch-api/internal/application/ports"
	domain "media-fetch-api/internal/domain/download"
)

type fakeDownloadService struct {
	DownloadFunc func(ctx context.Context, req ports.DownloadRequest, deliverer ports.Deliverer) (*domain.Record, error)
}

func (f *fakeDownloadService) Download(ctx context.Context, req ports.DownloadRequest, deliverer ports.Deliverer) (*domain.Record, error) {
	if f.DownloadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DownloadFunc(ctx, req, deliverer)
}

type fakeDeliverer struct{}

func (f *fakeDeliverer) Deliver(ctx context.Context, d ports.Delivery) error { return nil }

func Test_handle_Table(t *testing.T) {
	type tc struct {
		name     string
		body     string
		download func(ctx context.Context, req ports.DownloadRequest, deliverer ports.Deliverer) (*domain.Record, error)
		wantErr  bool
		wantCall bool
		checkReq func(t *testing.T, req ports.DownloadRequest)
	}

	cases := []tc{
		{
			name: "valid request reaches the orchestrator",
			body: `{"user_id":7,"user_name":"alice","url":"https://youtu.be/x","format":"audio"}`,
			download: func(ctx context.Context, req ports.DownloadRequest, deliverer ports.Deliverer) (*domain.Record, error) {
				return &domain.Record{ID: 1, UserID: req.UserID}, nil
			},
			wantCall: true,
			checkReq: func(t *testing.T, req ports.DownloadRequest) {
				assert.Equal(t, int64(7), req.UserID)
				assert.Equal(t, "alice", req.UserName)
				assert.Equal(t, "https://youtu.be/x", req.URL)
				assert.Equal(t, "audio", req.Format)
			},
		},
		{
			name:    "malformed payload is an error",
			body:    `{not json`,
			wantErr: true,
		},
		{
			name: "download failure is swallowed",
			body: `{"user_id":7,"url":"https://youtu.be/x","format":"video"}`,
			download: func(ctx context.Context, req ports.DownloadRequest, deliverer ports.Deliverer) (*domain.Record, error) {
				return nil, domain.NewFailure(domain.KindUnavailable, "content not available or restricted")
			},
			wantCall: true,
		},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var gotReq ports.DownloadRequest
			ds := &fakeDownloadService{
				DownloadFunc: func(ctx context.Context, req ports.DownloadRequest, deliverer ports.Deliverer) (*domain.Record, error) {
					called = true
					gotReq = req
					require.NotNil(t, deliverer)
					if tt.download == nil {
						return nil, errors.New("not used")
					}
					return tt.download(ctx, req, deliverer)
				},
			}
			c := New(config.MQ{}, zap.NewNop(), ds, &fakeDeliverer{})

			msg := amqp091.Delivery{RoutingKey: RoutingKeyRequest, Body: []byte(tt.body)}
			err := c.handle(context.Background(), msg)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantCall, called)
			if tt.checkReq != nil {
				tt.checkReq(t, gotReq)
			}
		})
	}
}

func TestConnect_InvalidDSN(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop(), &fakeDownloadService{}, &fakeDeliverer{})

	err := c.Connect("amqp://bad:://dsn")
	require.Error(t, err)
	require.Nil(t, c.chConsume)
	require.Nil(t, c.conn)
}
