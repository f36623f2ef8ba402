package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/episcope/internal/auth"
	"github.com/sells-group/episcope/internal/model"
	"github.com/sells-group/episcope/internal/pipeline"
	"github.com/sells-group/episcope/internal/region"
	"github.com/sells-group/episcope/internal/store"
)

type analyzeRequest struct {
	UserIDToken    string          `json:"userIdToken"`
	ChiefComplaint string          `json:"chiefComplaint"`
	Differential   []string        `json:"differential"`
	Location       locationPayload `json:"location"`
}

type locationPayload struct {
	ZipCode string `json:"zipCode,omitempty"`
	State   string `json:"state,omitempty"`
}

type analyzeResponse struct {
	OK       bool                       `json:"ok"`
	Analysis *model.TrendAnalysisResult `json:"analysis"`
	Warnings []string                   `json:"warnings,omitempty"`
}

type reportRequest struct {
	UserIDToken string `json:"userIdToken"`
	AnalysisID  string `json:"analysisId"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, err := s.verifier.Verify(req.UserIDToken)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if !identity.Plan.Allows(auth.FeatureSurveillance) {
		respondError(w, http.StatusForbidden, "plan does not include surveillance analysis")
		return
	}

	analysis, warnings, err := s.svc.Analyze(r.Context(), identity.UserID, pipeline.AnalyzeRequest{
		ChiefComplaint: req.ChiefComplaint,
		Differential:   req.Differential,
		Location: region.Location{
			ZipCode: req.Location.ZipCode,
			State:   req.Location.State,
		},
	})
	if err != nil {
		switch {
		case eris.Is(err, pipeline.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, "invalid request")
		case eris.Is(err, pipeline.ErrUnresolvableLocation):
			respondError(w, http.StatusBadRequest, "location could not be resolved")
		default:
			zap.L().Error("server: analyze failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	respondJSON(w, http.StatusOK, analyzeResponse{OK: true, Analysis: analysis, Warnings: warnings})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, err := s.verifier.Verify(req.UserIDToken)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if !identity.Plan.Allows(auth.FeaturePDFExport) {
		respondError(w, http.StatusForbidden, "plan does not include PDF export")
		return
	}

	doc, filename, err := s.svc.Report(r.Context(), identity.UserID, req.AnalysisID)
	if err != nil {
		switch {
		case eris.Is(err, pipeline.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, "analysisId must be a UUID")
		case eris.Is(err, store.ErrNotFound):
			respondError(w, http.StatusNotFound, "analysis not found")
		case eris.Is(err, pipeline.ErrNotOwner):
			respondError(w, http.StatusForbidden, "analysis belongs to another user")
		default:
			zap.L().Error("server: report failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{OK: false, Error: msg})
}
