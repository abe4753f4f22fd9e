// Package job provides background job processing using Asynq.
//
// Tasks are enqueued through an asynq.Client and executed by an
// asynq.Server, both backed by Redis.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/blog-api/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Enqueuer is the producer half of asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client Enqueuer

	server *asynq.Server
	mailer PostPublishedMailer
	notify string
	logger *zerolog.Logger
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the largest worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, mailer PostPublishedMailer) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		mailer: mailer,
		notify: cfg.Integration.NotifyEmail,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server.
// asynq.Server.Start runs the workers in the background and returns.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskPostPublished, j.handlePostPublishedTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// PostPublished enqueues the notification for a newly created post.
func (j *JobService) PostPublished(ctx context.Context, postID int64, title string) error {
	task, err := NewPostPublishedTask(j.notify, postID, title)
	if err != nil {
		return fmt.Errorf("failed to build post published task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue post published task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("post_id", postID).
		Msg("enqueued post published task")

	return nil
}
