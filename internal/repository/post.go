package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/blog-api/internal/model/post"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/deppfellow/blog-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const postsTable = "posts"

// postColumns selects a post with its category names aggregated in id order.
const postColumns = `
	p.id,
	p.title,
	p.text,
	p.created_at,
	p.updated_at,
	COALESCE(
		ARRAY_AGG(c.name ORDER BY c.id) FILTER (WHERE c.id IS NOT NULL),
		'{}'
	) AS categories
`

const postJoins = `
	FROM posts p
	LEFT JOIN post_categories pc ON pc.post_id = p.id
	LEFT JOIN categories c ON c.id = pc.category_id
`

type PostRepository struct {
	server *server.Server
}

func NewPostRepository(s *server.Server) *PostRepository {
	return &PostRepository{server: s}
}

func (r *PostRepository) CountPosts(ctx context.Context) (int, error) {
	var count int
	if err := r.server.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// ListPosts returns a window of posts, most recently updated first.
func (r *PostRepository) ListPosts(ctx context.Context, limit, offset int) ([]post.Post, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+postColumns+postJoins+`
		GROUP BY p.id
		ORDER BY p.updated_at DESC, p.id DESC
		LIMIT @limit OFFSET @offset
	`, pgx.NamedArgs{"limit": limit, "offset": offset})
	if err != nil {
		return nil, fmt.Errorf("failed to execute list posts query: %w", err)
	}

	posts, err := pgx.CollectRows(rows, pgx.RowToStructByName[post.Post])
	if err != nil {
		return nil, fmt.Errorf("failed to collect posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepository) GetPost(ctx context.Context, id int64) (*post.Post, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+postColumns+postJoins+`
		WHERE p.id = @id
		GROUP BY p.id
	`, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get post query for id=%d: %w", id, err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[post.Post])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NotFound(postsTable)
		}
		return nil, fmt.Errorf("failed to collect post id=%d: %w", id, err)
	}

	return &item, nil
}

// CreatePost inserts the post and its category associations in one transaction.
func (r *PostRepository) CreatePost(ctx context.Context, title, text string, categoryIDs []int64) (int64, error) {
	var id int64

	err := pgx.BeginFunc(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO posts (title, text)
			VALUES (@title, @text)
			RETURNING id
		`, pgx.NamedArgs{"title": title, "text": text}).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}

		return insertPostCategories(ctx, tx, id, categoryIDs)
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// UpdatePost applies patch and refreshes updated_at, even when the patch is empty.
func (r *PostRepository) UpdatePost(ctx context.Context, id int64, patch post.Patch) error {
	return pgx.BeginFunc(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE posts
			SET title = COALESCE(@title::VARCHAR, title),
			    text = COALESCE(@text::TEXT, text),
			    updated_at = now()
			WHERE id = @id
		`, pgx.NamedArgs{"id": id, "title": patch.Title, "text": patch.Text})
		if err != nil {
			return fmt.Errorf("failed to update post id=%d: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return sqlerr.NotFound(postsTable)
		}

		if !patch.ReplaceCategories {
			return nil
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM post_categories
			WHERE post_id = @id
		`, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("failed to clear categories of post id=%d: %w", id, err)
		}

		return insertPostCategories(ctx, tx, id, patch.CategoryIDs)
	})
}

// DeletePost removes the post's category associations, then the post.
func (r *PostRepository) DeletePost(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			DELETE FROM post_categories
			WHERE post_id = @id
		`, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("failed to detach categories of post id=%d: %w", id, err)
		}

		tag, err := tx.Exec(ctx, `
			DELETE FROM posts
			WHERE id = @id
		`, pgx.NamedArgs{"id": id})
		if err != nil {
			return fmt.Errorf("failed to delete post id=%d: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return sqlerr.NotFound(postsTable)
		}
		return nil
	})
}

func insertPostCategories(ctx context.Context, tx pgx.Tx, postID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO post_categories (post_id, category_id)
		SELECT @post_id, UNNEST(@category_ids::BIGINT[])
		ON CONFLICT DO NOTHING
	`, pgx.NamedArgs{"post_id": postID, "category_ids": categoryIDs}); err != nil {
		return fmt.Errorf("failed to associate categories with post id=%d: %w", postID, err)
	}

	return nil
}
