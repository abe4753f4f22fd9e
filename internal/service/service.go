// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated payloads from the handler, enforces the rules that need
// stored state (category limits, name uniqueness, existence) and calls
// the stores to read or persist data.
package service

import (
	"context"

	"github.com/deppfellow/blog-api/internal/model/category"
	"github.com/deppfellow/blog-api/internal/model/post"
)

// PostStore persists posts and their category associations.
//
// Lookups of a missing post return an error wrapping pgx.ErrNoRows,
// tagged with the table name (see sqlerr.NotFound).
type PostStore interface {
	CountPosts(ctx context.Context) (int, error)
	ListPosts(ctx context.Context, limit, offset int) ([]post.Post, error)
	GetPost(ctx context.Context, id int64) (*post.Post, error)
	CreatePost(ctx context.Context, title, text string, categoryIDs []int64) (int64, error)
	UpdatePost(ctx context.Context, id int64, patch post.Patch) error
	DeletePost(ctx context.Context, id int64) error
}

// CategoryStore persists categories.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]category.Category, error)
	GetCategory(ctx context.Context, id int64) (*category.Category, error)
	CreateCategory(ctx context.Context, name string) (*category.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*category.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	FindCategoryIDsByName(ctx context.Context, name string, excludeID int64) ([]int64, error)
	CountCategoriesByIDs(ctx context.Context, ids []int64) (int, error)
}

// PostNotifier is told about every post that was created.
type PostNotifier interface {
	PostPublished(ctx context.Context, postID int64, title string) error
}
