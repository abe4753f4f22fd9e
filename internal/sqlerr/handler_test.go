package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/blog-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	return httpErr
}

func TestHandleErrorNotFoundUsesTableTag(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{table: "posts", want: "Post not found"},
		{table: "categories", want: "Category not found"},
	}

	for _, tt := range tests {
		httpErr := asHTTPError(t, HandleError(fmt.Errorf("updating: %w", NotFound(tt.table))))
		if httpErr.Status != http.StatusNotFound {
			t.Fatalf("status = %d", httpErr.Status)
		}
		if httpErr.Message != tt.want {
			t.Fatalf("message = %q, want %q", httpErr.Message, tt.want)
		}
	}
}

func TestHandleErrorPlainNoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(pgx.ErrNoRows))
	if httpErr.Status != http.StatusNotFound || httpErr.Message != "Resource not found" {
		t.Fatalf("unexpected: %+v", httpErr)
	}
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "categories",
		ConstraintName: "categories_name_key",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert category: %w", pgErr)))
	if httpErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", httpErr.Status)
	}
	if httpErr.Code != "CATEGORY_ALREADY_EXISTS" {
		t.Fatalf("code = %q", httpErr.Code)
	}
	if httpErr.Message != "A Category with this Name already exists" {
		t.Fatalf("message = %q", httpErr.Message)
	}
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		TableName:  "post_categories",
		ColumnName: "category_id",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))
	if httpErr.Status != http.StatusBadRequest || httpErr.Message != "The referenced Category does not exist" {
		t.Fatalf("unexpected: %+v", httpErr)
	}
}

func TestHandleErrorPassesThroughHTTPError(t *testing.T) {
	original := errs.NewUnauthorizedError("Unauthorized", false)
	if got := HandleError(original); got != error(original) {
		t.Fatalf("HTTPError should be returned unchanged")
	}
}

func TestHandleErrorUnknown(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset")))
	if httpErr.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d", httpErr.Status)
	}
}

func TestErrCode(t *testing.T) {
	if got := ErrCode(&pgconn.PgError{Code: "23505"}); got != UniqueViolation {
		t.Fatalf("got %q", got)
	}
	if got := ErrCode(errors.New("x")); got != Other {
		t.Fatalf("got %q", got)
	}
}

func TestSingular(t *testing.T) {
	cases := map[string]string{"categories": "category", "posts": "post", "post_categories": "post_category", "s": "s"}
	for in, want := range cases {
		if got := singular(in); got != want {
			t.Fatalf("singular(%q) = %q, want %q", in, got, want)
		}
	}
}
