package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"testing"

	"github.com/deppfellow/blog-api/internal/errs"
	"github.com/deppfellow/blog-api/internal/model/category"
	"github.com/deppfellow/blog-api/internal/model/post"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/deppfellow/blog-api/internal/sqlerr"
	"github.com/deppfellow/blog-api/internal/testutil"
	"github.com/rs/zerolog"
)

type recordingNotifier struct {
	ids []int64
	err error
}

func (n *recordingNotifier) PostPublished(_ context.Context, postID int64, _ string) error {
	n.ids = append(n.ids, postID)
	return n.err
}

func newTestServices(t *testing.T, notifier PostNotifier) (*PostService, *CategoryService, *testutil.MemStore) {
	t.Helper()
	logger := zerolog.Nop()
	s := &server.Server{Logger: &logger}
	store := testutil.NewMemStore()
	return NewPostService(s, store, store, notifier), NewCategoryService(s, store), store
}

func mustCategory(t *testing.T, svc *CategoryService, name string) int64 {
	t.Helper()
	c, err := svc.CreateCategory(context.Background(), &category.CreateCategoryPayload{Name: name})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c.ID
}

func expectHTTPError(t *testing.T, err error, status int, code string) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want *errs.HTTPError", err)
	}
	if httpErr.Status != status || httpErr.Code != code {
		t.Fatalf("got %d %s (%s), want %d %s", httpErr.Status, httpErr.Code, httpErr.Message, status, code)
	}
	return httpErr
}

func expectNotFound(t *testing.T, err error, message string) {
	t.Helper()
	httpErr := expectHTTPError(t, sqlerr.HandleError(err), http.StatusNotFound, "NOT_FOUND")
	if httpErr.Message != message {
		t.Fatalf("message = %q, want %q", httpErr.Message, message)
	}
}

func TestCreatePostRejectsTooManyCategories(t *testing.T) {
	posts, cats, store := newTestServices(t, nil)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		ids = append(ids, mustCategory(t, cats, name))
	}

	_, err := posts.CreatePost(ctx, &post.CreatePostPayload{Title: "t", Text: "x", Categories: ids})
	httpErr := expectHTTPError(t, err, http.StatusBadRequest, errs.CodeTooManyCategories)
	if httpErr.Message != "At most 6 categories can be added to a post." {
		t.Fatalf("message = %q", httpErr.Message)
	}
	if store.PostCount() != 0 {
		t.Fatalf("a post was stored despite the failure")
	}

	if _, err := posts.CreatePost(ctx, &post.CreatePostPayload{Title: "t", Text: "x", Categories: ids[:6]}); err != nil {
		t.Fatalf("six categories should be accepted: %v", err)
	}
}

func TestCreatePostRejectsInvalidCategoryIDs(t *testing.T) {
	posts, cats, store := newTestServices(t, nil)
	ctx := context.Background()
	id := mustCategory(t, cats, "go")

	tests := []struct {
		name string
		ids  []int64
	}{
		{"unknown id", []int64{id, 999}},
		{"repeated id", []int64{id, id}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := posts.CreatePost(ctx, &post.CreatePostPayload{Title: "t", Text: "x", Categories: tt.ids})
			httpErr := expectHTTPError(t, err, http.StatusBadRequest, errs.CodeInvalidCategoryIDs)
			if httpErr.Message != "Some category IDs are invalid" {
				t.Fatalf("message = %q", httpErr.Message)
			}
			if store.PostCount() != 0 {
				t.Fatalf("a post was stored despite the failure")
			}
		})
	}
}

func TestCreatePostNotifies(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("queue down")}
	posts, _, _ := newTestServices(t, notifier)

	id, err := posts.CreatePost(context.Background(), &post.CreatePostPayload{Title: "t", Text: "x"})
	if err != nil {
		t.Fatalf("a notification failure must not fail creation: %v", err)
	}
	if !slices.Equal(notifier.ids, []int64{id}) {
		t.Fatalf("notified %v, want [%d]", notifier.ids, id)
	}
}

func TestUpdatePostCategories(t *testing.T) {
	posts, cats, store := newTestServices(t, nil)
	ctx := context.Background()
	a := mustCategory(t, cats, "a")
	b := mustCategory(t, cats, "b")

	id, err := posts.CreatePost(ctx, &post.CreatePostPayload{Title: "t", Text: "x", Categories: []int64{a, b}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var omitted post.UpdatePostPayload
	if err := json.Unmarshal([]byte(`{"title":"renamed"}`), &omitted); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := posts.UpdatePost(ctx, id, &omitted); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := store.PostCategoryIDs(id); !slices.Equal(got, []int64{a, b}) {
		t.Fatalf("omitted categories changed the set: %v", got)
	}

	var null post.UpdatePostPayload
	if err := json.Unmarshal([]byte(`{"categories":null}`), &null); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := posts.UpdatePost(ctx, id, &null); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := store.PostCategoryIDs(id); !slices.Equal(got, []int64{a, b}) {
		t.Fatalf("null categories changed the set: %v", got)
	}

	var empty post.UpdatePostPayload
	if err := json.Unmarshal([]byte(`{"categories":[]}`), &empty); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := posts.UpdatePost(ctx, id, &empty); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := store.PostCategoryIDs(id); len(got) != 0 {
		t.Fatalf("empty categories left %v", got)
	}

	stored, err := store.GetPost(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Title != "renamed" || stored.Text != "x" {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestUpdatePostIgnoresEmptyStrings(t *testing.T) {
	posts, _, store := newTestServices(t, nil)
	ctx := context.Background()

	id, err := posts.CreatePost(ctx, &post.CreatePostPayload{Title: "keep", Text: "body"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _ := store.GetPost(ctx, id)

	var payload post.UpdatePostPayload
	if err := json.Unmarshal([]byte(`{"title":"","text":""}`), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := posts.UpdatePost(ctx, id, &payload); err != nil {
		t.Fatalf("update: %v", err)
	}

	after, _ := store.GetPost(ctx, id)
	if after.Title != "keep" || after.Text != "body" {
		t.Fatalf("empty strings overwrote fields: %+v", after)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("updated_at was not refreshed")
	}
}

func TestUpdatePostChecksExistenceBeforeCategories(t *testing.T) {
	posts, _, _ := newTestServices(t, nil)

	payload := &post.UpdatePostPayload{}
	if err := json.Unmarshal([]byte(`{"categories":[1,2,3,4,5,6,7]}`), payload); err != nil {
		t.Fatalf("decode: %v", err)
	}

	expectNotFound(t, posts.UpdatePost(context.Background(), 42, payload), "Post not found")
}

func TestUpdatePostRejectsTooManyCategories(t *testing.T) {
	posts, cats, store := newTestServices(t, nil)
	ctx := context.Background()
	a := mustCategory(t, cats, "a")

	id, err := posts.CreatePost(ctx, &post.CreatePostPayload{Title: "t", Text: "x", Categories: []int64{a}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	payload := &post.UpdatePostPayload{}
	if err := json.Unmarshal([]byte(`{"title":"changed","categories":[1,2,3,4,5,6,7]}`), payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	expectHTTPError(t, posts.UpdatePost(ctx, id, payload), http.StatusBadRequest, errs.CodeTooManyCategories)

	stored, _ := store.GetPost(ctx, id)
	if stored.Title != "t" {
		t.Fatalf("post changed despite validation failure: %+v", stored)
	}
}

func TestDeletePost(t *testing.T) {
	posts, cats, store := newTestServices(t, nil)
	ctx := context.Background()
	a := mustCategory(t, cats, "a")

	id, err := posts.CreatePost(ctx, &post.CreatePostPayload{Title: "t", Text: "x", Categories: []int64{a}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := posts.DeletePost(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if store.PostCount() != 0 {
		t.Fatalf("post still stored")
	}
	if _, err := store.GetCategory(ctx, a); err != nil {
		t.Fatalf("category should survive post deletion: %v", err)
	}

	expectNotFound(t, posts.DeletePost(ctx, id), "Post not found")
}

func TestListPostsPagination(t *testing.T) {
	posts, _, _ := newTestServices(t, nil)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := posts.CreatePost(ctx, &post.CreatePostPayload{Title: "t", Text: "x"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	tests := []struct {
		name        string
		query       post.ListPostsQuery
		numPages    int
		currentPage int
		ids         []int64
	}{
		{"defaults", post.ListPostsQuery{}, 2, 1, []int64{7, 6, 5, 4, 3}},
		{"second page", post.ListPostsQuery{Page: "2"}, 2, 2, []int64{2, 1}},
		{"out of range", post.ListPostsQuery{Page: "99"}, 2, 2, []int64{2, 1}},
		{"non-integer page", post.ListPostsQuery{Page: "abc"}, 2, 1, []int64{7, 6, 5, 4, 3}},
		{"custom size", post.ListPostsQuery{Page: "3", PageSize: "3"}, 3, 3, []int64{1}},
		{"bad size", post.ListPostsQuery{PageSize: "-2"}, 2, 1, []int64{7, 6, 5, 4, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := posts.ListPosts(ctx, &tt.query)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if page.Count != 7 || page.NumPages != tt.numPages || page.CurrentPage != tt.currentPage {
				t.Fatalf("page = %d/%d/%d", page.Count, page.NumPages, page.CurrentPage)
			}
			var ids []int64
			for _, p := range page.Posts {
				ids = append(ids, p.ID)
			}
			if !slices.Equal(ids, tt.ids) {
				t.Fatalf("ids = %v, want %v", ids, tt.ids)
			}
		})
	}
}

func TestListPostsEmpty(t *testing.T) {
	posts, _, _ := newTestServices(t, nil)

	page, err := posts.ListPosts(context.Background(), &post.ListPostsQuery{Page: "4"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Count != 0 || page.NumPages != 1 || page.CurrentPage != 1 || page.Posts == nil || len(page.Posts) != 0 {
		t.Fatalf("page = %+v", page)
	}
}

func TestCreateCategoryDuplicate(t *testing.T) {
	_, cats, _ := newTestServices(t, nil)
	id := mustCategory(t, cats, "go")

	_, err := cats.CreateCategory(context.Background(), &category.CreateCategoryPayload{Name: "go"})
	httpErr := expectHTTPError(t, err, http.StatusBadRequest, errs.CodeDuplicateName)
	if httpErr.Message != "Category name must be unique" {
		t.Fatalf("message = %q", httpErr.Message)
	}
	if got, ok := httpErr.Details["duplicate_ids"].([]int64); !ok || !slices.Equal(got, []int64{id}) {
		t.Fatalf("details = %v", httpErr.Details)
	}
}

func TestUpdateCategoryName(t *testing.T) {
	_, cats, _ := newTestServices(t, nil)
	ctx := context.Background()
	a := mustCategory(t, cats, "a")
	b := mustCategory(t, cats, "b")

	if _, err := cats.UpdateCategory(ctx, a, &category.UpdateCategoryPayload{Name: "a"}); err != nil {
		t.Fatalf("renaming to its own name should succeed: %v", err)
	}

	_, err := cats.UpdateCategory(ctx, a, &category.UpdateCategoryPayload{Name: "b"})
	httpErr := expectHTTPError(t, err, http.StatusBadRequest, errs.CodeDuplicateName)
	if got := httpErr.Details["duplicate_ids"].([]int64); !slices.Equal(got, []int64{b}) {
		t.Fatalf("duplicate_ids = %v, want [%d]", got, b)
	}

	_, err = cats.UpdateCategory(ctx, 99, &category.UpdateCategoryPayload{Name: "b"})
	expectNotFound(t, err, "Category not found")
}

func TestDeleteCategoryDetachesFromPosts(t *testing.T) {
	posts, cats, store := newTestServices(t, nil)
	ctx := context.Background()
	a := mustCategory(t, cats, "a")
	b := mustCategory(t, cats, "b")

	id, err := posts.CreatePost(ctx, &post.CreatePostPayload{Title: "t", Text: "x", Categories: []int64{a, b}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := cats.DeleteCategory(ctx, a); err != nil {
		t.Fatalf("delete: %v", err)
	}

	stored, err := store.GetPost(ctx, id)
	if err != nil {
		t.Fatalf("post should survive category deletion: %v", err)
	}
	if !slices.Equal(stored.Categories, []string{"b"}) {
		t.Fatalf("categories = %v", stored.Categories)
	}

	expectNotFound(t, cats.DeleteCategory(ctx, a), "Category not found")
}

// staleLookupStore hides existing names from the first lookup, as if another
// request inserted the category between the check and the write.
type staleLookupStore struct {
	*testutil.MemStore
	lookups int
}

func (s *staleLookupStore) FindCategoryIDsByName(ctx context.Context, name string, excludeID int64) ([]int64, error) {
	s.lookups++
	if s.lookups == 1 {
		return nil, nil
	}
	return s.MemStore.FindCategoryIDsByName(ctx, name, excludeID)
}

func TestCreateCategoryUniqueViolationRace(t *testing.T) {
	_, categories, store := newTestServices(t, nil)
	first := mustCategory(t, categories, "go")

	logger := zerolog.Nop()
	racy := NewCategoryService(&server.Server{Logger: &logger}, &staleLookupStore{MemStore: store})

	_, err := racy.CreateCategory(context.Background(), &category.CreateCategoryPayload{Name: "go"})
	httpErr := expectHTTPError(t, err, http.StatusBadRequest, errs.CodeDuplicateName)
	if ids, _ := httpErr.Details["duplicate_ids"].([]int64); !slices.Equal(ids, []int64{first}) {
		t.Fatalf("duplicate_ids = %v, want [%d]", httpErr.Details["duplicate_ids"], first)
	}
}
