package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"media-fetch-api/config"
	"media-fetch-api/internal/application/ports"
	dto "media-fetch-api/internal/interface/api/rest/dto/download"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

// RoutingKeyRequest is what the chat front-end publishes download requests under.
const RoutingKeyRequest = "request"

// Consumer reads download requests from the queue and runs them through the
// orchestrator. Delivery on this path is the shared outbox directory.
type Consumer struct {
	cfg             config.MQ
	log             *zap.Logger
	conn            *amqp091.Connection
	chConsume       *amqp091.Channel
	chDelivery      <-chan amqp091.Delivery
	downloadService ports.DownloadService
	deliverer       ports.Deliverer
}

func New(
	cfg config.MQ,
	logger *zap.Logger,
	downloadService ports.DownloadService,
	deliverer ports.Deliverer,
) *Consumer {
	return &Consumer{
		cfg:             cfg,
		log:             logger,
		downloadService: downloadService,
		deliverer:       deliverer,
	}
}

func (c *Consumer) Connect(dsn string) error {
	var err error
	c.conn, err = amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	c.chConsume, err = c.conn.Channel()
	if err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	var err error
	if err = c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err = c.chConsume.QueueDeclare(
		c.cfg.RequestQueue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err = c.chConsume.QueueBind(
		c.cfg.RequestQueue,
		RoutingKeyRequest,
		c.cfg.Exchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue bind %s: %w", RoutingKeyRequest, err)
	}

	if err = c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	var cerr error
	c.chDelivery, cerr = c.chConsume.Consume(
		c.cfg.RequestQueue,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if cerr != nil {
		return fmt.Errorf("consume: %w", cerr)
	}

	return nil
}

func (c *Consumer) RequestWorker(ctx context.Context) {
	c.log.Info("starting request worker")

	defer func() {
		c.log.Info("request worker gracefully stopped")
	}()

	for {
		select {
		case msg := <-c.chDelivery:
			// we can also use "fan-out" chan here with "worker-pool"
			// in case of heavy logic processing of messages
			if err := c.handle(ctx, msg); err != nil {
				// alert
				c.log.Error("mq request handling error", zap.Error(err))
			}
		case <-ctx.Done():
			c.chConsume.Close()
			return
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) error {
	var req dto.Request
	if err := json.Unmarshal(msg.Body, &req); err != nil {
		return fmt.Errorf("bad request payload: %w", err)
	}

	rec, err := c.downloadService.Download(ctx, ports.DownloadRequest{
		UserID:   req.UserID,
		UserName: req.UserName,
		URL:      req.URL,
		Format:   req.Format,
	}, c.deliverer)
	if err != nil {
		// the orchestrator already published the failure event
		c.log.Warn("queued download failed",
			zap.Int64("user_id", req.UserID),
			zap.Error(err),
		)
		return nil
	}

	c.log.Info("queued download delivered",
		zap.Int64("user_id", req.UserID),
		zap.Uint64("record_id", rec.ID),
	)

	return nil
}
