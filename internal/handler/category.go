package handler

import (
	"github.com/deppfellow/blog-api/internal/model"
	"github.com/deppfellow/blog-api/internal/model/category"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/deppfellow/blog-api/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	Handler
	categoryService *service.CategoryService
}

func NewCategoryHandler(s *server.Server, categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		Handler:         NewHandler(s),
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) ListCategories(c echo.Context, _ *category.ListCategoriesQuery) (*category.ListResponse, error) {
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		return nil, err
	}

	return &category.ListResponse{Categories: categories}, nil
}

func (h *CategoryHandler) CreateCategory(c echo.Context, payload *category.CreateCategoryPayload) (*category.CreatedResponse, error) {
	item, err := h.categoryService.CreateCategory(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}

	return &category.CreatedResponse{
		Message: "Category created",
		ID:      item.ID,
	}, nil
}

// ResolveCategory answers 404 unless the :id path parameter names a stored category.
func (h *CategoryHandler) ResolveCategory(c echo.Context) error {
	id, err := pathID(c, "Category")
	if err != nil {
		return err
	}

	_, err = h.categoryService.GetCategory(c.Request().Context(), id)
	return err
}

func (h *CategoryHandler) UpdateCategory(c echo.Context, payload *category.UpdateCategoryPayload) (*model.MessageResponse, error) {
	id, err := pathID(c, "Category")
	if err != nil {
		return nil, err
	}

	if _, err := h.categoryService.UpdateCategory(c.Request().Context(), id, payload); err != nil {
		return nil, err
	}

	return &model.MessageResponse{Message: "Category updated"}, nil
}

func (h *CategoryHandler) DeleteCategory(c echo.Context, _ *category.DeleteCategoryPayload) (*model.MessageResponse, error) {
	id, err := pathID(c, "Category")
	if err != nil {
		return nil, err
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), id); err != nil {
		return nil, err
	}

	return &model.MessageResponse{Message: "Category deleted"}, nil
}
