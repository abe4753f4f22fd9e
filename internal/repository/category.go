package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/blog-api/internal/model/category"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/deppfellow/blog-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const categoriesTable = "categories"

type CategoryRepository struct {
	server *server.Server
}

func NewCategoryRepository(s *server.Server) *CategoryRepository {
	return &CategoryRepository{server: s}
}

// ListCategories returns every category in id order.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]category.Category, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT id, name
		FROM categories
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list categories query: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[category.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to collect categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT id, name
		FROM categories
		WHERE id = @id
	`, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get category query for id=%d: %w", id, err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[category.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NotFound(categoriesTable)
		}
		return nil, fmt.Errorf("failed to collect category id=%d: %w", id, err)
	}

	return &item, nil
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, name string) (*category.Category, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		INSERT INTO categories (name)
		VALUES (@name)
		RETURNING id, name
	`, pgx.NamedArgs{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create category query: %w", err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[category.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to collect created category: %w", err)
	}

	return &item, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, id int64, name string) (*category.Category, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		UPDATE categories
		SET name = @name
		WHERE id = @id
		RETURNING id, name
	`, pgx.NamedArgs{"id": id, "name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to execute update category query for id=%d: %w", id, err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[category.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NotFound(categoriesTable)
		}
		return nil, fmt.Errorf("failed to collect updated category id=%d: %w", id, err)
	}

	return &item, nil
}

// DeleteCategory detaches the category from every post, then deletes it.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			DELETE FROM post_categories
			WHERE category_id = @id
		`, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("failed to detach category id=%d from posts: %w", id, err)
		}

		tag, err := tx.Exec(ctx, `
			DELETE FROM categories
			WHERE id = @id
		`, pgx.NamedArgs{"id": id})
		if err != nil {
			return fmt.Errorf("failed to delete category id=%d: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return sqlerr.NotFound(categoriesTable)
		}
		return nil
	})
}

// FindCategoryIDsByName returns the ids of categories named name, skipping excludeID.
// An excludeID of 0 excludes nothing.
func (r *CategoryRepository) FindCategoryIDsByName(ctx context.Context, name string, excludeID int64) ([]int64, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT id
		FROM categories
		WHERE name = @name AND id <> @exclude_id
		ORDER BY id ASC
	`, pgx.NamedArgs{"name": name, "exclude_id": excludeID})
	if err != nil {
		return nil, fmt.Errorf("failed to execute find categories by name query: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to collect category ids: %w", err)
	}

	return ids, nil
}

// CountCategoriesByIDs counts the distinct existing categories among ids.
func (r *CategoryRepository) CountCategoriesByIDs(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int
	err := r.server.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM categories
		WHERE id = ANY(@ids)
	`, pgx.NamedArgs{"ids": ids}).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}

	return count, nil
}
