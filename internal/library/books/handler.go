package books

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
	"github.com/Tendwa-T/library-management-system/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service, secret []byte) {
	h := &Handler{svc: svc}

	r.POST("/books/create", auth.RequireAuth(secret), auth.Require(auth.OpBookCreate), h.Create)
	r.GET("/books", h.List)
	r.GET("/books/author/:id", h.ListByAuthor)
	r.GET("/books/:isbn", h.Get)
	r.PUT("/books/:isbn", auth.RequireAuth(secret), auth.Require(auth.OpBookUpdate), h.Update)
	r.DELETE("/books/:isbn", auth.RequireAuth(secret), auth.Require(auth.OpBookDelete), h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("invalid json"))
		return
	}
	b, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusCreated, b, "Book created")
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, out, "Books retrieved")
}

func (h *Handler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, b, "Book found")
}

func (h *Handler) ListByAuthor(c *gin.Context) {
	out, err := h.svc.ListByAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, out, "Books retrieved")
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("invalid json"))
		return
	}
	b, err := h.svc.Update(c.Request.Context(), c.Param("isbn"), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, b, "Book updated")
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("isbn")); err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, struct{}{}, "Book deleted")
}
