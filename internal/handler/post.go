package handler

import (
	"github.com/deppfellow/blog-api/internal/model"
	"github.com/deppfellow/blog-api/internal/model/post"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/deppfellow/blog-api/internal/service"
	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	Handler
	postService *service.PostService
}

func NewPostHandler(s *server.Server, postService *service.PostService) *PostHandler {
	return &PostHandler{
		Handler:     NewHandler(s),
		postService: postService,
	}
}

func (h *PostHandler) ListPosts(c echo.Context, query *post.ListPostsQuery) (*post.PostPage, error) {
	return h.postService.ListPosts(c.Request().Context(), query)
}

func (h *PostHandler) CreatePost(c echo.Context, payload *post.CreatePostPayload) (*post.CreatedResponse, error) {
	id, err := h.postService.CreatePost(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}

	return &post.CreatedResponse{
		Message: "Post created.",
		PostID:  id,
	}, nil
}

// ResolvePost answers 404 unless the :id path parameter names a stored post.
func (h *PostHandler) ResolvePost(c echo.Context) error {
	id, err := pathID(c, "Post")
	if err != nil {
		return err
	}

	_, err = h.postService.GetPost(c.Request().Context(), id)
	return err
}

func (h *PostHandler) UpdatePost(c echo.Context, payload *post.UpdatePostPayload) (*model.MessageResponse, error) {
	id, err := pathID(c, "Post")
	if err != nil {
		return nil, err
	}

	if err := h.postService.UpdatePost(c.Request().Context(), id, payload); err != nil {
		return nil, err
	}

	return &model.MessageResponse{Message: "Post updated successfully"}, nil
}

func (h *PostHandler) DeletePost(c echo.Context, _ *post.DeletePostPayload) (*model.MessageResponse, error) {
	id, err := pathID(c, "Post")
	if err != nil {
		return nil, err
	}

	if err := h.postService.DeletePost(c.Request().Context(), id); err != nil {
		return nil, err
	}

	return &model.MessageResponse{Message: "Post deleted"}, nil
}
