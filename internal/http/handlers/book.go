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

type BookHandler struct {
	log   *logger.Logger
	books services.BookService
}

func NewBookHandler(log *logger.Logger, books services.BookService) *BookHandler {
	return &BookHandler{
		log:   log.With("handler", "BookHandler"),
		books: books,
	}
}

type createBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Stock  int    `json:"stock"`
}

// POST /api/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	book, err := h.books.Create(c.Request.Context(), &types.Book{
		Title:  req.Title,
		Author: req.Author,
		Stock:  req.Stock,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, book)
}

// GET /api/books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	book, err := h.books.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, book)
}

// GET /api/books
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.books.List(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"books": books})
}
