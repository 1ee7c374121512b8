package authors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
	"github.com/Tendwa-T/library-management-system/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service, secret []byte) {
	h := &Handler{svc: svc}

	r.POST("/authors/create", auth.RequireAuth(secret), auth.Require(auth.OpAuthorCreate), h.Create)
	r.GET("/authors", h.List)
	r.GET("/authors/:id", h.Get)
	r.PUT("/authors/:id", auth.RequireAuth(secret), auth.Require(auth.OpAuthorUpdate), h.Update)
	r.DELETE("/authors/:id", auth.RequireAuth(secret), auth.Require(auth.OpAuthorDelete), h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("invalid json"))
		return
	}
	a, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusCreated, a, "Author created")
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, out, "Authors retrieved")
}

func (h *Handler) Get(c *gin.Context) {
	a, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, a, "Author found")
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("invalid json"))
		return
	}
	a, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, a, "Author updated")
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		api.Fail(c, err)
		return
	}
	// 202 mirrors the existing clients' expectation for author deletion.
	api.OK(c, http.StatusAccepted, struct{}{}, "Author deleted")
}
