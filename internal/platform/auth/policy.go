package auth

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
)

// Operation names a guarded endpoint. The policy table below is the single
// place where role requirements live, handlers never inspect claims
// themselves.
type Operation string

const (
	OpAuthorCreate Operation = "author.create"
	OpAuthorUpdate Operation = "author.update"
	OpAuthorDelete Operation = "author.delete"

	OpBookCreate Operation = "book.create"
	OpBookUpdate Operation = "book.update"
	OpBookDelete Operation = "book.delete"

	OpMemberCreate Operation = "member.create"
	OpMemberList   Operation = "member.list"
	OpMemberGet    Operation = "member.get"
	OpMemberUpdate Operation = "member.update"
	OpMemberDelete Operation = "member.delete"

	OpLoanCreate Operation = "loan.create"
	OpLoanReturn Operation = "loan.return"
	OpLoanDelete Operation = "loan.delete"

	OpUserList   Operation = "user.list"
	OpUserGet    Operation = "user.get"
	OpUserUpdate Operation = "user.update"
	OpUserDelete Operation = "user.delete"
)

type Requirement int

const (
	RoleAny Requirement = iota
	RoleAuthenticated
	RoleAdmin
)

var policy = map[Operation]Requirement{
	OpAuthorCreate: RoleAuthenticated,
	OpAuthorUpdate: RoleAuthenticated,
	OpAuthorDelete: RoleAdmin,

	OpBookCreate: RoleAuthenticated,
	OpBookUpdate: RoleAuthenticated,
	OpBookDelete: RoleAdmin,

	OpMemberCreate: RoleAuthenticated,
	OpMemberList:   RoleAuthenticated,
	OpMemberGet:    RoleAuthenticated,
	OpMemberUpdate: RoleAuthenticated,
	OpMemberDelete: RoleAdmin,

	OpLoanCreate: RoleAuthenticated,
	OpLoanReturn: RoleAuthenticated,
	OpLoanDelete: RoleAdmin,

	OpUserList:   RoleAdmin,
	OpUserGet:    RoleAuthenticated,
	OpUserUpdate: RoleAuthenticated,
	OpUserDelete: RoleAdmin,
}

// Authorize decides whether the caller may perform op. cl is nil for
// anonymous callers.
func Authorize(op Operation, cl *Claims) error {
	req, ok := policy[op]
	if !ok {
		// Unknown operations are never reachable through the router;
		// deny rather than default-allow.
		return api.ErrForbidden("Unauthorized")
	}
	switch req {
	case RoleAny:
		return nil
	case RoleAuthenticated:
		if cl == nil {
			return api.ErrUnauthorized("Token is required")
		}
		return nil
	case RoleAdmin:
		if cl == nil {
			return api.ErrUnauthorized("Token is required")
		}
		if !cl.IsAdmin {
			return api.ErrForbidden("Unauthorized")
		}
		return nil
	}
	return api.ErrForbidden("Unauthorized")
}

// Require evaluates the policy for op against the claims placed in the
// context by RequireAuth. Denials are logged before the response goes out.
func Require(op Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		cl, _ := FromContext(c)
		if err := Authorize(op, cl); err != nil {
			who := "anonymous"
			if cl != nil {
				who = cl.Username
			}
			log.Printf("[WARN] %s denied for %s", op, who)
			api.Fail(c, err)
			return
		}
		c.Next()
	}
}
