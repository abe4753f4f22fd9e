package repository

import (
	"github.com/deppfellow/blog-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Post     *PostRepository
	Category *CategoryRepository
}

// NewRepositories constructs the repository container on top of the
// server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Post:     NewPostRepository(s),
		Category: NewCategoryRepository(s),
	}
}
