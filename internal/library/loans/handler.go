package loans

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

	r.POST("/loans/create", auth.RequireAuth(secret), auth.Require(auth.OpLoanCreate), h.Create)
	r.GET("/loans", h.List)
	r.GET("/loans/summary", h.Summary)
	r.GET("/loans/member/:memberID", h.ListByMember)
	r.GET("/loans/book/:bookISBN", h.ListByISBN)
	r.PUT("/loans/return", auth.RequireAuth(secret), auth.Require(auth.OpLoanReturn), h.Return)
	r.DELETE("/loans", auth.RequireAuth(secret), auth.Require(auth.OpLoanDelete), h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("Member ID and Book ISBN are required"))
		return
	}
	l, err := h.svc.CreateLoan(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusCreated, l, "Loan created")
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.svc.GetAllLoans(c.Request.Context())
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, out, "Loans retrieved")
}

func (h *Handler) ListByMember(c *gin.Context) {
	out, err := h.svc.GetLoansByMember(c.Request.Context(), c.Param("memberID"))
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, out, "Loans retrieved")
}

func (h *Handler) ListByISBN(c *gin.Context) {
	out, err := h.svc.GetLoansByISBN(c.Request.Context(), c.Param("bookISBN"))
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, out, "Loans retrieved")
}

func (h *Handler) Return(c *gin.Context) {
	var req ReturnBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("Member ID and Book ISBN are required"))
		return
	}
	l, err := h.svc.ReturnBook(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, l, "Book returned")
}

func (h *Handler) Delete(c *gin.Context) {
	var req DeleteLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, api.ErrInvalid("Member ID and Book ISBN are required"))
		return
	}
	if err := h.svc.DeleteLoan(c.Request.Context(), req); err != nil {
		api.Fail(c, err)
		return
	}
	if cl, ok := auth.FromContext(c); ok {
		log.Printf("[INFO] loan for member %s / isbn %s deleted by %s", req.MemberID, req.BookISBN, cl.Username)
	}
	api.OK(c, http.StatusOK, struct{}{}, "Loan deleted")
}

func (h *Handler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, sum, "Summary retrieved")
}
