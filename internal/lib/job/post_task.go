package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskPostPublished is the job type name stored in Redis.
	TaskPostPublished = "post:published"
)

// PostPublishedPayload is the JSON payload of the post-published task.
type PostPublishedPayload struct {
	To     string `json:"to"`
	PostID int64  `json:"post_id"`
	Title  string `json:"title"`
}

// NewPostPublishedTask builds the asynq task announcing a new post.
//
// The task goes to the "default" queue, retries up to 3 times and is
// cancelled after 30 seconds.
func NewPostPublishedTask(to string, postID int64, title string) (*asynq.Task, error) {
	payload, err := json.Marshal(PostPublishedPayload{
		To:     to,
		PostID: postID,
		Title:  title,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskPostPublished,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
