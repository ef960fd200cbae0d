package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"offerflow/domain"
	"offerflow/extraction"
	"offerflow/pipeline"
)

// OfferRequest is one uploaded batch plus its run options. Rows and columns
// come from the excluded file-reading collaborators; image batches carry a
// data URL instead.
type OfferRequest struct {
	Category        domain.Category   `json:"category"`
	SourceType      domain.SourceType `json:"source_type"`
	DoubleStackable bool              `json:"double_stackable"`
	ExtractPrice    bool              `json:"extract_price"`

	Columns    []string     `json:"columns"`
	Rows       []domain.Row `json:"rows"`
	ImageURL   string       `json:"image_url,omitempty"`
	ByteSize   int64        `json:"byte_size"`
	SheetCount int          `json:"sheet_count"`
}

func (s *Server) handleOffers(w http.ResponseWriter, r *http.Request) {
	var req OfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Category != domain.CategoryFood && req.Category != domain.CategoryHPC {
		http.Error(w, "category must be FOOD or HPC", http.StatusBadRequest)
		return
	}

	batch := &domain.RawBatch{
		SourceType: req.SourceType,
		Columns:    req.Columns,
		Rows:       req.Rows,
		ImageURL:   req.ImageURL,
		ByteSize:   req.ByteSize,
		SheetCount: req.SheetCount,
	}

	result, err := s.pipeline.Run(r.Context(), batch, pipeline.Options{
		Category:      req.Category,
		DoubleStacked: req.DoubleStackable,
		ExtractPrice:  req.ExtractPrice,
	})
	if err != nil {
		s.writeRunError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, extraction.ErrAllChunksFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		s.logger.Error("pipeline run failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
