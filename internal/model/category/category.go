// Package category contains the Category entity and its request payloads.
package category

import "github.com/deppfellow/blog-api/internal/validation"

// MaxNameLength bounds Category.Name (varchar(100)).
const MaxNameLength = 100

// Category is a unique label that posts can be filed under.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// ------------------------------------------------------------
// Payloads

// CreateCategoryPayload is the body of POST /categories/.
type CreateCategoryPayload struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (p *CreateCategoryPayload) Validate() error {
	return validation.ValidateStruct(p)
}

// UpdateCategoryPayload is the body of PATCH /categories/{id}/.
type UpdateCategoryPayload struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (p *UpdateCategoryPayload) Validate() error {
	return validation.ValidateStruct(p)
}

// ListCategoriesQuery is the (empty) query of GET /categories/.
type ListCategoriesQuery struct{}

func (q *ListCategoriesQuery) Validate() error { return nil }

// DeleteCategoryPayload is the (empty) input of DELETE /categories/{id}/.
type DeleteCategoryPayload struct{}

func (p *DeleteCategoryPayload) Validate() error { return nil }

// ------------------------------------------------------------
// Responses

// ListResponse is the body of GET /categories/.
type ListResponse struct {
	Categories []Category `json:"categories"`
}

// CreatedResponse is the body of a successful POST /categories/.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
