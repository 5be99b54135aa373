package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paperleaf/paperleaf/internal/domain"
	"github.com/paperleaf/paperleaf/internal/service"
	apperrors "github.com/paperleaf/paperleaf/pkg/errors"
	"github.com/paperleaf/paperleaf/pkg/httputil"
	"github.com/paperleaf/paperleaf/pkg/middleware"
	"github.com/paperleaf/paperleaf/pkg/pagination"
	"github.com/paperleaf/paperleaf/pkg/validator"
)

// BookHandler handles HTTP requests for the book catalog.
type BookHandler struct {
	service *service.BookService
	logger  *slog.Logger
}

// NewBookHandler creates a new book HTTP handler.
func NewBookHandler(svc *service.BookService, logger *slog.Logger) *BookHandler {
	return &BookHandler{service: svc, logger: logger}
}

// AddBookRequest is the JSON request body for adding a book.
type AddBookRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=500"`
	Author      string `json:"author" validate:"required,min=1,max=200"`
	Genre       string `json:"genre" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=5000"`
}

// BookListResponse is one page of the catalog.
type BookListResponse struct {
	Books       []domain.Book `json:"books"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// BookDetailResponse is a book together with its reviews.
type BookDetailResponse struct {
	Book    *domain.Book     `json:"book"`
	Reviews []*domain.Review `json:"reviews"`
}

// Add handles POST /books
func (h *BookHandler) Add(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	var req AddBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	book, err := h.service.AddBook(r.Context(), service.AddBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Description: req.Description,
		AddedBy:     identity.UserID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, book)
}

// List handles GET /books
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.BookFilter{
		Genre:  r.URL.Query().Get("genre"),
		Author: r.URL.Query().Get("author"),
	}
	page := pagination.FromRequest(r)

	result, err := h.service.ListBooks(r.Context(), filter, page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, BookListResponse{
		Books:       result.Books,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	})
}

// Get handles GET /books/{id}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.service.GetBookDetail(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, BookDetailResponse{
		Book:    detail.Book,
		Reviews: detail.Reviews,
	})
}
