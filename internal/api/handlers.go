package api

import (
	"log/slog"
	"net/http"

	"github.com/hyperengineering/reviewlens/internal/review"
)

// Handler implements the API handlers for the review resource.
type Handler struct {
	engine   *review.Engine
	ingestor *review.Ingestor
}

// NewHandler creates a new Handler over the query engine and ingestor.
func NewHandler(engine *review.Engine, ingestor *review.Ingestor) *Handler {
	return &Handler{engine: engine, ingestor: ingestor}
}

// ListReviews handles GET /. Absent query parameters mean the corresponding
// filter is not applied.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	results := h.engine.Query(review.Filters{
		Location:  q.Get("location"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	})

	writeJSON(w, http.StatusOK, results)
}

// CreateReview handles POST /. The body is form-encoded with ReviewBody and
// Location fields.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, http.StatusBadRequest, "Malformed form body")
		return
	}

	created, err := h.ingestor.Ingest(r.Context(), review.Submission{
		Body:     r.PostFormValue("ReviewBody"),
		Location: r.PostFormValue("Location"),
	})
	if err != nil {
		if verr, ok := asValidationError(err); ok {
			WriteError(w, http.StatusBadRequest, verr.Message)
			return
		}
		slog.Error("review ingestion failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
