// Package testutil holds test doubles shared by package tests.
package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/deppfellow/blog-api/internal/model/category"
	"github.com/deppfellow/blog-api/internal/model/post"
	"github.com/deppfellow/blog-api/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
)

type storedPost struct {
	post.Post
	categoryIDs []int64
}

// MemStore is an in-memory PostStore and CategoryStore. It reports missing
// rows and duplicate category names with the same errors as PostgreSQL.
type MemStore struct {
	mu         sync.Mutex
	clock      time.Time
	nextPost   int64
	nextCat    int64
	posts      map[int64]*storedPost
	categories map[int64]category.Category
}

func NewMemStore() *MemStore {
	return &MemStore{
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		posts:      map[int64]*storedPost{},
		categories: map[int64]category.Category{},
	}
}

// tick advances the store clock so every write gets a distinct timestamp.
func (m *MemStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// PostCategoryIDs returns the category ids linked to a post, in id order.
func (m *MemStore) PostCategoryIDs(id int64) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil
	}
	ids := slices.Clone(p.categoryIDs)
	slices.Sort(ids)
	return ids
}

// PostCount returns the number of stored posts.
func (m *MemStore) PostCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.posts)
}

// ------------------------------------------------------------
// Posts

func (m *MemStore) CountPosts(_ context.Context) (int, error) {
	return m.PostCount(), nil
}

func (m *MemStore) ListPosts(_ context.Context, limit, offset int) ([]post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]post.Post, 0, len(m.posts))
	for _, p := range m.posts {
		all = append(all, m.view(p))
	}

	slices.SortFunc(all, func(a, b post.Post) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})

	if offset >= len(all) {
		return []post.Post{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (m *MemStore) GetPost(_ context.Context, id int64) (*post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, sqlerr.NotFound("posts")
	}
	view := m.view(p)
	return &view, nil
}

func (m *MemStore) CreatePost(_ context.Context, title, text string, categoryIDs []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextPost++
	now := m.tick()
	m.posts[m.nextPost] = &storedPost{
		Post: post.Post{
			ID:        m.nextPost,
			Title:     title,
			Text:      text,
			CreatedAt: now,
			UpdatedAt: now,
		},
		categoryIDs: slices.Clone(categoryIDs),
	}
	return m.nextPost, nil
}

func (m *MemStore) UpdatePost(_ context.Context, id int64, patch post.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return sqlerr.NotFound("posts")
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Text != nil {
		p.Text = *patch.Text
	}
	if patch.ReplaceCategories {
		p.categoryIDs = slices.Clone(patch.CategoryIDs)
	}
	p.UpdatedAt = m.tick()
	return nil
}

func (m *MemStore) DeletePost(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return sqlerr.NotFound("posts")
	}
	delete(m.posts, id)
	return nil
}

// view resolves category names in category id order. Callers hold m.mu.
func (m *MemStore) view(p *storedPost) post.Post {
	ids := slices.Clone(p.categoryIDs)
	slices.Sort(ids)

	out := p.Post
	out.Categories = []string{}
	for _, id := range ids {
		if c, ok := m.categories[id]; ok {
			out.Categories = append(out.Categories, c.Name)
		}
	}
	return out
}

// ------------------------------------------------------------
// Categories

func (m *MemStore) ListCategories(_ context.Context) ([]category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]category.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b category.Category) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

func (m *MemStore) GetCategory(_ context.Context, id int64) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.categories[id]
	if !ok {
		return nil, sqlerr.NotFound("categories")
	}
	return &c, nil
}

func (m *MemStore) CreateCategory(_ context.Context, name string) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nameTaken(name, 0) {
		return nil, uniqueNameViolation()
	}
	m.nextCat++
	c := category.Category{ID: m.nextCat, Name: name}
	m.categories[c.ID] = c
	return &c, nil
}

func (m *MemStore) UpdateCategory(_ context.Context, id int64, name string) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return nil, sqlerr.NotFound("categories")
	}
	if m.nameTaken(name, id) {
		return nil, uniqueNameViolation()
	}
	c := category.Category{ID: id, Name: name}
	m.categories[id] = c
	return &c, nil
}

func (m *MemStore) DeleteCategory(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return sqlerr.NotFound("categories")
	}
	for _, p := range m.posts {
		p.categoryIDs = slices.DeleteFunc(p.categoryIDs, func(c int64) bool { return c == id })
	}
	delete(m.categories, id)
	return nil
}

func (m *MemStore) FindCategoryIDsByName(_ context.Context, name string, excludeID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []int64
	for id, c := range m.categories {
		if c.Name == name && id != excludeID {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *MemStore) CountCategoriesByIDs(_ context.Context, ids []int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[int64]struct{}{}
	for _, id := range ids {
		if _, ok := m.categories[id]; ok {
			seen[id] = struct{}{}
		}
	}
	return len(seen), nil
}

func (m *MemStore) nameTaken(name string, excludeID int64) bool {
	for id, c := range m.categories {
		if c.Name == name && id != excludeID {
			return true
		}
	}
	return false
}

func uniqueNameViolation() error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "categories_name_key"`,
		TableName:      "categories",
		ConstraintName: "categories_name_key",
	}
}
