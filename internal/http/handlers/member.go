package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/http/response"
	"github.com/hritamkar/library-management/internal/pkg/logger"
	"github.com/hritamkar/library-management/internal/services"
)

type MemberHandler struct {
	log     *logger.Logger
	members services.MemberService
	loans   services.LoanService
}

func NewMemberHandler(log *logger.Logger, members services.MemberService, loans services.LoanService) *MemberHandler {
	return &MemberHandler{
		log:     log.With("handler", "MemberHandler"),
		members: members,
		loans:   loans,
	}
}

type createMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// POST /api/members
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	member, err := h.members.Create(c.Request.Context(), &types.Member{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, member)
}

// GET /api/members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	member, err := h.members.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, member)
}

// GET /api/members/:id/loans
func (h *MemberHandler) ListMemberLoans(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if _, err := h.members.Get(c.Request.Context(), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	loans, err := h.loans.ListByMember(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"loans": loans})
}

// GET /api/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.members.List(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"members": members})
}
