package members

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
	"github.com/Tendwa-T/library-management-system/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service, secret []byte) {
	h := &Handler{svc: svc}

	r.POST("/members/create", auth.RequireAuth(secret), auth.Require(auth.OpMemberCreate), h.Create)
	r.GET("/members", auth.RequireAuth(secret), auth.Require(auth.OpMemberList), h.List)
	r.GET("/members/:id", auth.RequireAuth(secret), auth.Require(auth.OpMemberGet), h.Get)
	r.PUT("/members/:id", auth.RequireAuth(secret), auth.Require(auth.OpMemberUpdate), h.Update)
	r.DELETE("/members/:id", auth.RequireAuth(secret), auth.Require(auth.OpMemberDelete), h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("invalid json"))
		return
	}
	m, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusCreated, m, "Member created")
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, out, "Members retrieved")
}

func (h *Handler) Get(c *gin.Context) {
	m, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, m, "Member found")
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("invalid json"))
		return
	}
	m, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, m, "Member updated")
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		api.Fail(c, err)
		return
	}
	if cl, ok := auth.FromContext(c); ok {
		log.Printf("[INFO] member %s deleted by %s", c.Param("id"), cl.Username)
	}
	api.OK(c, http.StatusOK, struct{}{}, "Member deleted")
}
