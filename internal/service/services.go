package service

import (
	"github.com/deppfellow/blog-api/internal/repository"
	"github.com/deppfellow/blog-api/internal/server"
)

type Services struct {
	Post     *PostService
	Category *CategoryService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier PostNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Post:     NewPostService(s, repos.Post, repos.Category, notifier),
		Category: NewCategoryService(s, repos.Category),
	}, nil
}
