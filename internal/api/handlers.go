package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/paveup/paveup/internal/classify"
	"github.com/paveup/paveup/internal/geo"
	"github.com/paveup/paveup/internal/models"
	"github.com/paveup/paveup/internal/registry"
	"github.com/paveup/paveup/internal/report"
	"github.com/paveup/paveup/internal/resolve"
	"github.com/rs/zerolog/log"
)

// Classifier is the slice of the classification adapter the handlers need.
type Classifier interface {
	Classify(ctx context.Context, image classify.ImageData, language string) (models.ClassificationResult, error)
}

// Handler contains all HTTP handlers.
type Handler struct {
	classifier      Classifier
	geocoder        geo.ReverseGeocoder
	sink            Sink
	maxImageBytes   int64
	defaultLanguage string
}

// NewHandler creates a new handler.
func NewHandler(classifier Classifier, geocoder geo.ReverseGeocoder, sink Sink, maxImageBytes int64, defaultLanguage string) *Handler {
	if maxImageBytes <= 0 {
		maxImageBytes = 8 << 20
	}
	if defaultLanguage == "" {
		defaultLanguage = "en"
	}
	return &Handler{
		classifier:      classifier,
		geocoder:        geocoder,
		sink:            sink,
		maxImageBytes:   maxImageBytes,
		defaultLanguage: defaultLanguage,
	}
}

// HealthCheck returns the service health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

// ListAuthorities returns every authority record in declaration order.
func (h *Handler) ListAuthorities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"authorities": registry.AllRecords(),
	})
}

// GetAuthority returns one authority record by provider key.
func (h *Handler) GetAuthority(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	rec, err := registry.RecordFor(key)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown authority key")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ListCategories returns the known issue categories with their responsible
// authority names.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	keys := registry.Categories()
	infos := make([]models.CategoryInfo, 0, len(keys))
	for _, key := range keys {
		infos = append(infos, models.CategoryInfo{
			Key:       key,
			Authority: resolve.Resolve(key).Name,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": infos,
	})
}

// ClassifyImage analyzes an uploaded photo. The response is 200 for every
// classifier outcome, fallbacks included: the contract is that callers always
// receive a usable analysis and branch only on the success flag.
func (h *Handler) ClassifyImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageBytes+512*1024)
	if err := r.ParseMultipartForm(h.maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form or image too large")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Photo file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxImageBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read photo")
		return
	}
	if int64(len(data)) > h.maxImageBytes {
		writeError(w, http.StatusBadRequest, "Photo exceeds the size limit")
		return
	}

	language := r.FormValue("language")
	if language == "" {
		language = h.defaultLanguage
	}

	coords := parseCoords(r.FormValue("lat"), r.FormValue("lng"))

	image := classify.ImageData{
		Bytes:    data,
		MIMEType: http.DetectContentType(data),
		Name:     header.Filename,
	}

	result, classifyErr := h.classifier.Classify(r.Context(), image, language)
	if classifyErr != nil {
		// Downgraded silently for the caller; logged for diagnostics.
		log.Warn().Err(classifyErr).Str("photo", header.Filename).Msg("Classification downgraded to fallback")
	}

	response := models.ClassifyResponse{
		Success:   result.Source == models.SourceClassifier,
		Analysis:  result,
		Authority: authorityFor(result, coords),
	}
	if !response.Success {
		response.Warnings = append(response.Warnings, models.Warning{
			Source:  "classifier",
			Message: "Classification fell back to a synthesized result",
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// SubmitReport validates the draft, assembles the payload, and emits it to
// the local sink.
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft := models.ReportDraft{
		PhotoName:      req.PhotoName,
		Coordinates:    req.Coordinates,
		Classification: req.Classification,
		ManualCategory: req.ManualCategory,
		Address:        req.Address,
		Pincode:        req.Pincode,
		Name:           req.Name,
		Phone:          req.Phone,
		CreatedAt:      time.Now().UTC(),
	}

	payload, err := report.BuildPayload(draft)
	if err != nil {
		var vErr *report.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": vErr.Error(),
				"field": vErr.Field,
			})
			return
		}
		log.Error().Err(err).Msg("Failed to build payload")
		writeError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	if err := h.sink.Emit(payload); err != nil {
		log.Error().Err(err).Str("reference_id", payload.ReferenceID).Msg("Failed to emit report")
		writeError(w, http.StatusInternalServerError, "Failed to record report")
		return
	}

	writeJSON(w, http.StatusCreated, models.SubmitReportResponse{
		ReferenceID: payload.ReferenceID,
		Payload:     payload,
	})
}

// ReverseGeocode resolves coordinates to a best-effort address. Lookup
// failures return empty address fields with a warning, never an error status:
// the address is optional and must not block submission.
func (h *Handler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	var req models.Coordinates
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response := map[string]interface{}{}
	addr, err := h.geocoder.ReverseGeocode(r.Context(), req)
	if err != nil {
		log.Debug().Err(err).Msg("Reverse geocode failed")
		response["address"] = models.Address{}
		response["warnings"] = []models.Warning{{Source: "geocoder", Message: err.Error()}}
	} else {
		response["address"] = addr
	}

	writeJSON(w, http.StatusOK, response)
}

// authorityFor resolves the authority to display with a classification,
// using the same precedence as payload assembly.
func authorityFor(result models.ClassificationResult, coords *models.Coordinates) models.AuthorityRecord {
	if result.RecommendedAuthority != nil && result.RecommendedAuthority.Name != "" {
		return *result.RecommendedAuthority
	}
	if key, ok := resolve.DeriveCategory(result.IssueLabel); ok {
		return resolve.ResolveWithLocation(key, coords)
	}
	return registry.Default()
}

func parseCoords(latStr, lngStr string) *models.Coordinates {
	if latStr == "" || lngStr == "" {
		return nil
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		return nil
	}
	return &models.Coordinates{Lat: lat, Lng: lng}
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
