package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// PostPublishedMailer delivers the post-published email.
type PostPublishedMailer interface {
	SendPostPublishedEmail(to string, postID int64, title string) error
}

// handlePostPublishedTask sends the notification email for a new post.
// A returned error makes asynq schedule a retry.
func (j *JobService) handlePostPublishedTask(ctx context.Context, t *asynq.Task) error {
	var p PostPublishedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal post published payload: %w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskPostPublished).
		Int64("post_id", p.PostID).
		Str("to", p.To).
		Msg("processing post published task")

	if err := j.mailer.SendPostPublishedEmail(p.To, p.PostID, p.Title); err != nil {
		j.logger.Error().
			Str("type", TaskPostPublished).
			Int64("post_id", p.PostID).
			Err(err).
			Msg("failed to send post published email")
		return err
	}

	j.logger.Info().
		Str("type", TaskPostPublished).
		Int64("post_id", p.PostID).
		Msg("sent post published email")

	return nil
}
