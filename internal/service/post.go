package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/blog-api/internal/errs"
	"github.com/deppfellow/blog-api/internal/lib/utils"
	"github.com/deppfellow/blog-api/internal/middleware"
	"github.com/deppfellow/blog-api/internal/model/post"
	"github.com/deppfellow/blog-api/internal/server"
)

type PostService struct {
	server     *server.Server
	posts      PostStore
	categories CategoryStore
	notifier   PostNotifier
}

// NewPostService builds a PostService. notifier may be nil.
func NewPostService(s *server.Server, posts PostStore, categories CategoryStore, notifier PostNotifier) *PostService {
	return &PostService{
		server:     s,
		posts:      posts,
		categories: categories,
		notifier:   notifier,
	}
}

// ListPosts returns one page of posts, most recently updated first.
// Malformed or out-of-range paging parameters resolve to a valid page.
func (s *PostService) ListPosts(ctx context.Context, query *post.ListPostsQuery) (*post.PostPage, error) {
	count, err := s.posts.CountPosts(ctx)
	if err != nil {
		return nil, err
	}

	page := utils.Paginate(count, utils.ParsePageNumber(query.Page), utils.ParsePageSize(query.PageSize))

	posts := []post.Post{}
	if page.Limit > 0 {
		posts, err = s.posts.ListPosts(ctx, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
	}

	return &post.PostPage{
		Count:       count,
		NumPages:    page.NumPages,
		CurrentPage: page.Number,
		Posts:       posts,
	}, nil
}

// CreatePost validates the category list and stores the post.
func (s *PostService) CreatePost(ctx context.Context, payload *post.CreatePostPayload) (int64, error) {
	if err := s.validateCategoryIDs(ctx, payload.Categories); err != nil {
		return 0, err
	}

	id, err := s.posts.CreatePost(ctx, payload.Title, payload.Text, payload.Categories)
	if err != nil {
		return 0, err
	}

	log := middleware.LoggerFromContext(ctx, s.server.Logger)
	log.Info().
		Int64("post_id", id).
		Int("categories", len(payload.Categories)).
		Msg("post created")

	if s.notifier != nil {
		if err := s.notifier.PostPublished(ctx, id, payload.Title); err != nil {
			log.Error().Err(err).Int64("post_id", id).Msg("failed to schedule post notification")
		}
	}

	return id, nil
}

func (s *PostService) GetPost(ctx context.Context, id int64) (*post.Post, error) {
	return s.posts.GetPost(ctx, id)
}

// UpdatePost applies payload to the post with the given id.
func (s *PostService) UpdatePost(ctx context.Context, id int64, payload *post.UpdatePostPayload) error {
	if _, err := s.posts.GetPost(ctx, id); err != nil {
		return err
	}

	patch := payload.Patch()
	if patch.ReplaceCategories {
		if err := s.validateCategoryIDs(ctx, patch.CategoryIDs); err != nil {
			return err
		}
	}

	return s.posts.UpdatePost(ctx, id, patch)
}

func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	return s.posts.DeletePost(ctx, id)
}

// validateCategoryIDs rejects lists longer than post.MaxCategories, lists
// with repeated ids and ids that reference no category.
func (s *PostService) validateCategoryIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	if len(ids) > post.MaxCategories {
		code := errs.CodeTooManyCategories
		return errs.NewBadRequestError(
			fmt.Sprintf("At most %d categories can be added to a post.", post.MaxCategories),
			false, &code, nil,
		)
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return invalidCategoryIDs()
		}
		seen[id] = struct{}{}
	}

	count, err := s.categories.CountCategoriesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return invalidCategoryIDs()
	}

	return nil
}

func invalidCategoryIDs() error {
	code := errs.CodeInvalidCategoryIDs
	return errs.NewBadRequestError("Some category IDs are invalid", false, &code, nil)
}
