package service

import (
	"context"

	"github.com/deppfellow/blog-api/internal/errs"
	"github.com/deppfellow/blog-api/internal/middleware"
	"github.com/deppfellow/blog-api/internal/model/category"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/deppfellow/blog-api/internal/sqlerr"
)

type CategoryService struct {
	server     *server.Server
	categories CategoryStore
}

func NewCategoryService(s *server.Server, categories CategoryStore) *CategoryService {
	return &CategoryService{
		server:     s,
		categories: categories,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]category.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, payload *category.CreateCategoryPayload) (*category.Category, error) {
	if err := s.ensureUniqueName(ctx, payload.Name, 0); err != nil {
		return nil, err
	}

	item, err := s.categories.CreateCategory(ctx, payload.Name)
	if err != nil {
		return nil, s.uniqueNameRace(ctx, payload.Name, 0, err)
	}

	middleware.LoggerFromContext(ctx, s.server.Logger).Info().
		Int64("category_id", item.ID).
		Msg("category created")

	return item, nil
}

// UpdateCategory renames a category. Keeping its own name is allowed.
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, payload *category.UpdateCategoryPayload) (*category.Category, error) {
	if _, err := s.categories.GetCategory(ctx, id); err != nil {
		return nil, err
	}

	if err := s.ensureUniqueName(ctx, payload.Name, id); err != nil {
		return nil, err
	}

	item, err := s.categories.UpdateCategory(ctx, id, payload.Name)
	if err != nil {
		return nil, s.uniqueNameRace(ctx, payload.Name, id, err)
	}

	return item, nil
}

// DeleteCategory removes the category from every post, then deletes it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.DeleteCategory(ctx, id)
}

func (s *CategoryService) ensureUniqueName(ctx context.Context, name string, excludeID int64) error {
	ids, err := s.categories.FindCategoryIDsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	return duplicateName(ids)
}

// uniqueNameRace turns a unique violation from a concurrent write of the same
// name into the regular duplicate-name error. Other errors pass through.
func (s *CategoryService) uniqueNameRace(ctx context.Context, name string, excludeID int64, err error) error {
	if sqlerr.ErrCode(err) != sqlerr.UniqueViolation {
		return err
	}

	ids, findErr := s.categories.FindCategoryIDsByName(ctx, name, excludeID)
	if findErr != nil || len(ids) == 0 {
		return err
	}

	return duplicateName(ids)
}

func duplicateName(ids []int64) error {
	code := errs.CodeDuplicateName
	return errs.NewBadRequestError("Category name must be unique", false, &code, nil).
		WithDetails("duplicate_ids", ids)
}
