// Package post contains the Post entity, its update patch and its request payloads.
package post

import (
	"time"
	"unicode/utf8"

	"github.com/deppfellow/blog-api/internal/model"
	"github.com/deppfellow/blog-api/internal/validation"
)

const (
	// MaxTitleLength bounds Post.Title (varchar(100)).
	MaxTitleLength = 100

	// MaxCategories is the largest category set a post may carry.
	MaxCategories = 6
)

// Post is a blog entry as returned by the listing endpoint.
// Categories holds category names ordered by category id.
type Post struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Text       string    `json:"text" db:"text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
	Categories []string  `json:"categories" db:"categories"`
}

// Patch describes a partial update. Nil Title/Text are left untouched;
// CategoryIDs replaces the association set only when ReplaceCategories is true.
type Patch struct {
	Title             *string
	Text              *string
	ReplaceCategories bool
	CategoryIDs       []int64
}

// ------------------------------------------------------------
// Payloads

// ListPostsQuery holds the raw paging parameters of GET /posts/.
// They stay strings so malformed values fall back to defaults instead of failing.
type ListPostsQuery struct {
	Page     string `query:"page"`
	PageSize string `query:"page_size"`
}

func (q *ListPostsQuery) Validate() error { return nil }

// CreatePostPayload is the body of POST /posts/.
type CreatePostPayload struct {
	Title      string  `json:"title" validate:"required,max=100"`
	Text       string  `json:"text" validate:"required"`
	Categories []int64 `json:"categories"`
}

func (p *CreatePostPayload) Validate() error {
	return validation.ValidateStruct(p)
}

// UpdatePostPayload is the body of PATCH /posts/{id}/.
//
// title/text replace the stored value only when present and non-empty.
// categories replaces the set when present, including an empty list;
// an omitted or null categories key leaves the set untouched.
type UpdatePostPayload struct {
	Title      model.Optional[string]  `json:"title"`
	Text       model.Optional[string]  `json:"text"`
	Categories model.Optional[[]int64] `json:"categories"`
}

func (p *UpdatePostPayload) Validate() error {
	var errs validation.CustomValidationErrors

	if p.Title.Present() && utf8.RuneCountInString(p.Title.Value) > MaxTitleLength {
		errs = append(errs, validation.CustomValidationError{
			Field:   "title",
			Message: "title must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Patch converts the payload into a Patch.
func (p *UpdatePostPayload) Patch() Patch {
	var patch Patch

	if p.Title.Present() && p.Title.Value != "" {
		title := p.Title.Value
		patch.Title = &title
	}
	if p.Text.Present() && p.Text.Value != "" {
		text := p.Text.Value
		patch.Text = &text
	}
	if p.Categories.Present() {
		patch.ReplaceCategories = true
		patch.CategoryIDs = append([]int64{}, p.Categories.Value...)
	}

	return patch
}

// DeletePostPayload is the (empty) input of DELETE /posts/{id}/.
type DeletePostPayload struct{}

func (p *DeletePostPayload) Validate() error { return nil }

// ------------------------------------------------------------
// Responses

// PostPage is the body of GET /posts/.
type PostPage struct {
	Count       int    `json:"count"`
	NumPages    int    `json:"num_pages"`
	CurrentPage int    `json:"current_page"`
	Posts       []Post `json:"posts"`
}

// CreatedResponse is the body of a successful POST /posts/.
type CreatedResponse struct {
	Message string `json:"message"`
	PostID  int64  `json:"post_id"`
}
