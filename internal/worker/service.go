package worker

import (
	"context"
	"errors"

	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service asynq server running the consumer
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the worker service; the queue must be enabled
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	if consumer.Publisher == nil {
		return nil, errors.New("publisher is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name service name
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start blocks until the server stops
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	_ = ctx
	return s.server.Run(s.mux)
}

// Stop shuts the server down and closes the publisher
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	if s.consumer != nil && s.consumer.Publisher != nil {
		if err := s.consumer.Publisher.Close(); err != nil {
			logger.Warnw("worker_publisher_close_failed", "error", err)
		}
	}
	return nil
}
