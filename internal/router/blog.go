package router

import (
	"net/http"

	"github.com/deppfellow/blog-api/internal/handler"
	"github.com/deppfellow/blog-api/internal/middleware"
	"github.com/deppfellow/blog-api/internal/model/category"
	"github.com/deppfellow/blog-api/internal/model/post"
	"github.com/labstack/echo/v4"
)

// registerBlogRoutes maps the post and category endpoints. Reads are public;
// writes require the API key. PATCH routes resolve the addressed entity
// before reading the body.
func registerBlogRoutes(r *echo.Echo, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	posts := r.Group("/posts")

	posts.GET("/", handler.Handle(h.Post.Handler, h.Post.ListPosts, http.StatusOK, &post.ListPostsQuery{}))
	posts.POST("/", handler.Handle(h.Post.Handler, h.Post.CreatePost, http.StatusCreated, &post.CreatePostPayload{}), auth.RequireAPIKey)
	posts.PATCH("/:id/", handler.HandleResolved(h.Post.Handler, h.Post.ResolvePost, h.Post.UpdatePost, http.StatusOK, &post.UpdatePostPayload{}), auth.RequireAPIKey)
	posts.DELETE("/:id/", handler.Handle(h.Post.Handler, h.Post.DeletePost, http.StatusOK, &post.DeletePostPayload{}), auth.RequireAPIKey)

	categories := r.Group("/categories")

	categories.GET("/", handler.Handle(h.Category.Handler, h.Category.ListCategories, http.StatusOK, &category.ListCategoriesQuery{}))
	categories.POST("/", handler.Handle(h.Category.Handler, h.Category.CreateCategory, http.StatusCreated, &category.CreateCategoryPayload{}), auth.RequireAPIKey)
	categories.PATCH("/:id/", handler.HandleResolved(h.Category.Handler, h.Category.ResolveCategory, h.Category.UpdateCategory, http.StatusOK, &category.UpdateCategoryPayload{}), auth.RequireAPIKey)
	categories.DELETE("/:id/", handler.Handle(h.Category.Handler, h.Category.DeleteCategory, http.StatusOK, &category.DeleteCategoryPayload{}), auth.RequireAPIKey)
}
