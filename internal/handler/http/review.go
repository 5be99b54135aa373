package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paperleaf/paperleaf/internal/service"
	apperrors "github.com/paperleaf/paperleaf/pkg/errors"
	"github.com/paperleaf/paperleaf/pkg/httputil"
	"github.com/paperleaf/paperleaf/pkg/middleware"
	"github.com/paperleaf/paperleaf/pkg/validator"
)

// ReviewHandler handles HTTP requests for posting reviews.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: svc, logger: logger}
}

// AddReviewRequest is the JSON request body for posting a review. Rating is a
// pointer so an explicit 0 fails the range check rather than looking omitted.
type AddReviewRequest struct {
	Rating     *int   `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text" validate:"required,min=1,max=10000"`
}

// Add handles POST /reviews/{bookId}
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	var req AddReviewRequest
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

	review, err := h.service.AddReview(r.Context(), service.AddReviewInput{
		BookID:     chi.URLParam(r, "bookId"),
		UserID:     identity.UserID,
		Rating:     *req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, review)
}
