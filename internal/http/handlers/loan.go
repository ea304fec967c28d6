package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/http/response"
	"github.com/hritamkar/library-management/internal/pkg/apperr"
	"github.com/hritamkar/library-management/internal/pkg/logger"
	"github.com/hritamkar/library-management/internal/services"
)

type LoanHandler struct {
	log   *logger.Logger
	loans services.LoanService
}

func NewLoanHandler(log *logger.Logger, loans services.LoanService) *LoanHandler {
	return &LoanHandler{
		log:   log.With("handler", "LoanHandler"),
		loans: loans,
	}
}

type createLoanRequest struct {
	BookID   string `json:"bookId"`
	MemberID string `json:"memberId"`
	DueDate  string `json:"dueDate"`
}

type returnBookRequest struct {
	LoanID string `json:"loan_id"`
	Email  string `json:"email"`
}

// POST /api/loans
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	loan := &types.Loan{}
	if req.BookID != "" {
		id, err := uuid.Parse(req.BookID)
		if err != nil {
			response.RespondAppError(c, apperr.Validation("Book with ID "+req.BookID+" does not exist"))
			return
		}
		loan.BookID = id
	}
	if req.MemberID != "" {
		id, err := uuid.Parse(req.MemberID)
		if err != nil {
			response.RespondAppError(c, apperr.Validation("Member with ID "+req.MemberID+" does not exist"))
			return
		}
		loan.MemberID = id
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_due_date", err)
			return
		}
		loan.DueDate = due
	}

	created, err := h.loans.Create(c.Request.Context(), loan)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, created)
}

// POST /api/loans/return
func (h *LoanHandler) ReturnBook(c *gin.Context) {
	var req returnBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	result, err := h.loans.Return(c.Request.Context(), req.LoanID, req.Email)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// GET /api/loans/:id
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	loan, err := h.loans.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, loan)
}

// GET /api/loans/:id/history
func (h *LoanHandler) GetLoanHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if _, err := h.loans.Get(c.Request.Context(), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	events, err := h.loans.History(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}

// GET /api/loans
func (h *LoanHandler) ListLoans(c *gin.Context) {
	loans, err := h.loans.List(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"loans": loans})
}
