package users

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

	r.POST("/users/create", h.Create)
	r.POST("/users/login", h.Login)
	r.POST("/users/logout", h.Logout)
	r.GET("/users", auth.RequireAuth(secret), auth.Require(auth.OpUserList), h.List)
	r.GET("/users/:id", auth.RequireAuth(secret), auth.Require(auth.OpUserGet), h.Get)
	r.PUT("/users/:id", auth.RequireAuth(secret), auth.Require(auth.OpUserUpdate), h.Update)
	r.DELETE("/users/:id", auth.RequireAuth(secret), auth.Require(auth.OpUserDelete), h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("invalid json"))
		return
	}
	u, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	log.Printf("[INFO] user %s created", u.Username)
	api.OK(c, http.StatusCreated, u, "User created")
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, out, "Users retrieved")
}

func (h *Handler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, u, "User found")
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("invalid json"))
		return
	}
	if err := h.svc.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, struct{}{}, "User updated")
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		api.Fail(c, err)
		return
	}
	if cl, ok := auth.FromContext(c); ok {
		log.Printf("[INFO] user %s deleted by %s", c.Param("id"), cl.Username)
	}
	api.OK(c, http.StatusOK, struct{}{}, "User deleted")
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("All fields are required"))
		return
	}
	sess, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	log.Printf("[INFO] user %s logged in", sess.Username)
	api.OK(c, http.StatusOK, sess, "Login successful")
}

func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("Username is required"))
		return
	}
	sess, err := h.svc.Logout(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	log.Printf("[INFO] user %s logged out", sess.Username)
	api.OK(c, http.StatusOK, sess, "Logout successful")
}
