package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"adforge/internal/brief"
	"adforge/internal/campaign"
	"adforge/internal/export"
	"adforge/internal/history"
	"adforge/internal/importer"
	"adforge/internal/insight"
	"adforge/internal/prompt"
	"adforge/internal/schema"
	"adforge/internal/types"
)

// CredentialRequest is the request body for POST /credential.
type CredentialRequest struct {
	Key string `json:"key"`
}

// GenerateResponse is the response for POST /generate.
type GenerateResponse struct {
	Phase        campaign.Phase              `json:"phase"`
	Items        []types.VariantWithMeta     `json:"items"`
	Advice       []string                    `json:"advice,omitempty"`
	Architecture *types.CampaignArchitecture `json:"architecture,omitempty"`
}

// RemixRequest is the request body for POST /variants/{id}/remix.
type RemixRequest struct {
	Intent types.RemixIntent `json:"intent"`
}

// ApplyTipRequest is the request body for POST /variants/{id}/apply-tip.
type ApplyTipRequest struct {
	Metric types.Metric `json:"metric"`
	Tip    string       `json:"tip"`
}

// RemixTipRequest is the request body for POST /variants/{id}/remix-tip.
type RemixTipRequest struct {
	Metric types.Metric `json:"metric"`
}

// TipResponse is the response for POST /variants/{id}/remix-tip.
type TipResponse struct {
	Tip string `json:"tip"`
}

// FavoriteRequest is the request body for POST /favorites. Campaign is the
// caller's label for the saved copy; empty means the brief's product.
type FavoriteRequest struct {
	VariantID string `json:"variantId"`
	Campaign  string `json:"campaign"`
}

// ImportResponse is the response for POST /performance/import.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// InsightsResponse is the response for GET /insights.
type InsightsResponse struct {
	Insights     []string                `json:"insights"`
	CTADiversity string                  `json:"ctaDiversity,omitempty"`
	Checklist    insight.ChecklistResult `json:"checklist"`
}

// UTMRequest is the request body for POST /utm.
type UTMRequest struct {
	BaseURL  string         `json:"baseUrl"`
	Platform types.Platform `json:"platform"`
	Campaign string         `json:"campaign"`
	Content  string         `json:"content"`
	Term     string         `json:"term"`
}

// UTMResponse is the response for POST /utm.
type UTMResponse struct {
	URL string `json:"url"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Phase  string `json:"phase"`
}

// ErrorResponse is the error response. ReformatAvailable is set when a failed
// generation can be resubmitted once via POST /generate/reformat.
type ErrorResponse struct {
	Error             string `json:"error"`
	ReformatAvailable bool   `json:"reformatAvailable,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
		Phase:  string(s.orchestrator.Phase()),
	})
}

func (s *Server) handleSetCredential(w http.ResponseWriter, r *http.Request) {
	var req CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		s.sendError(w, http.StatusBadRequest, "key is required")
		return
	}
	s.orchestrator.SetCredential(req.Key)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearCredential(w http.ResponseWriter, r *http.Request) {
	s.orchestrator.ClearCredential()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var b brief.CampaignBrief
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.orchestrator.Generate(r.Context(), b); err != nil {
		if s.orchestrator.CanReformat() {
			s.sendJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error(), ReformatAvailable: true})
			return
		}
		s.sendFlowError(w, err)
		return
	}
	s.sendGenerateState(w)
}

// handleReformat triggers the one-shot strict-JSON resubmission of the last
// failed generation.
func (s *Server) handleReformat(w http.ResponseWriter, r *http.Request) {
	if err := s.orchestrator.Reformat(r.Context()); err != nil {
		s.sendFlowError(w, err)
		return
	}
	s.sendGenerateState(w)
}

func (s *Server) sendGenerateState(w http.ResponseWriter) {
	s.sendJSON(w, http.StatusOK, GenerateResponse{
		Phase:        s.orchestrator.Phase(),
		Items:        s.orchestrator.Items(),
		Advice:       s.orchestrator.Advice(),
		Architecture: s.orchestrator.Architecture(),
	})
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, s.orchestrator.Items())
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if err := s.orchestrator.Score(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.sendFlowError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, s.orchestrator.Items())
}

func (s *Server) handleRemix(w http.ResponseWriter, r *http.Request) {
	var req RemixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Intent == "" {
		s.sendError(w, http.StatusBadRequest, "intent is required")
		return
	}
	if err := s.orchestrator.Remix(r.Context(), chi.URLParam(r, "id"), req.Intent); err != nil {
		s.sendFlowError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, s.orchestrator.Items())
}

func (s *Server) handleApplyTip(w http.ResponseWriter, r *http.Request) {
	var req ApplyTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Metric == "" {
		s.sendError(w, http.StatusBadRequest, "metric is required")
		return
	}
	if err := s.orchestrator.ApplyTip(r.Context(), chi.URLParam(r, "id"), req.Metric, req.Tip); err != nil {
		s.sendFlowError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, s.orchestrator.Items())
}

func (s *Server) handleRemixTip(w http.ResponseWriter, r *http.Request) {
	var req RemixTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Metric == "" {
		s.sendError(w, http.StatusBadRequest, "metric is required")
		return
	}
	tip, err := s.orchestrator.RemixTip(r.Context(), chi.URLParam(r, "id"), req.Metric)
	if err != nil {
		s.sendFlowError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, TipResponse{Tip: tip})
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, s.orchestrator.Favorites())
}

func (s *Server) handleSaveFavorite(w http.ResponseWriter, r *http.Request) {
	var req FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VariantID == "" {
		s.sendError(w, http.StatusBadRequest, "variantId is required")
		return
	}
	fav, err := s.orchestrator.SaveFavorite(req.VariantID, req.Campaign)
	if err != nil {
		s.sendFlowError(w, err)
		return
	}
	s.sendJSON(w, http.StatusCreated, fav)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if !s.orchestrator.RemoveFavorite(chi.URLParam(r, "id")) {
		s.sendError(w, http.StatusNotFound, "favorite not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportFavorites(w http.ResponseWriter, r *http.Request) {
	favorites := s.orchestrator.Favorites()
	stamp := time.Now().UTC().Format("2006-01-02")
	switch r.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "adforge-favorites-"+stamp+".csv"))
		if err := export.FavoritesCSV(w, favorites); err != nil {
			s.logger.Warn("favorites csv export failed")
		}
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "adforge-favorites-"+stamp+".json"))
		if err := export.FavoritesJSON(w, favorites); err != nil {
			s.logger.Warn("favorites json export failed")
		}
	default:
		s.sendError(w, http.StatusBadRequest, "format must be json or csv")
	}
}

func (s *Server) handleImportPerformance(w http.ResponseWriter, r *http.Request) {
	data, err := importer.ParsePerformanceCSV(r.Body)
	if err != nil {
		s.sendFlowError(w, err)
		return
	}
	s.orchestrator.AttachPerformance(data)
	s.sendJSON(w, http.StatusOK, ImportResponse{Imported: len(data)})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, InsightsResponse{
		Insights:     s.orchestrator.Insights(),
		CTADiversity: s.orchestrator.CTADiversity(),
		Checklist:    s.orchestrator.Checklist(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.orchestrator.History()
	if entries == nil {
		entries = []history.Entry{}
	}
	s.sendJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, s.orchestrator.Settings())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings types.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.orchestrator.UpdateSettings(settings)
	s.sendJSON(w, http.StatusOK, s.orchestrator.Settings())
}

func (s *Server) handleExpandAngle(w http.ResponseWriter, r *http.Request) {
	exp, err := s.orchestrator.ExpandAngle(r.Context(), prompt.AngleKey(chi.URLParam(r, "key")))
	if err != nil {
		s.sendFlowError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, exp)
}

func (s *Server) handleGenerateHooks(w http.ResponseWriter, r *http.Request) {
	hooks, err := s.orchestrator.GenerateHooks(r.Context(), prompt.HookCategory(chi.URLParam(r, "category")))
	if err != nil {
		s.sendFlowError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, map[string][]string{"hooks": hooks})
}

func (s *Server) handleGenerateNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.orchestrator.GenerateNames(r.Context())
	if err != nil {
		s.sendFlowError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, map[string][]string{"names": names})
}

func (s *Server) handleGenerateBlueprint(w http.ResponseWriter, r *http.Request) {
	bp, err := s.orchestrator.GenerateBlueprint(r.Context())
	if err != nil {
		s.sendFlowError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, bp)
}

func (s *Server) handleImportBlueprint(w http.ResponseWriter, r *http.Request) {
	var bp types.CampaignBlueprint
	if err := json.NewDecoder(r.Body).Decode(&bp); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	added := s.orchestrator.ImportBlueprint(bp)
	s.sendJSON(w, http.StatusOK, added)
}

func (s *Server) handleBuildUTM(w http.ResponseWriter, r *http.Request) {
	var req UTMRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	url, err := export.BuildUTMURL(req.BaseURL, req.Platform, req.Campaign, req.Content, req.Term)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.sendJSON(w, http.StatusOK, UTMResponse{URL: url})
}

// sendFlowError maps the error taxonomy onto HTTP status codes.
func (s *Server) sendFlowError(w http.ResponseWriter, err error) {
	var (
		transport *schema.TransportError
		invalid   *schema.InvalidModelOutputError
		schemaErr *schema.SchemaError
		imp       *schema.ImportFormatError
	)
	switch {
	case errors.Is(err, schema.ErrCredentialMissing):
		s.sendError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, campaign.ErrUnknownVariant):
		s.sendError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, campaign.ErrNoBrief), errors.Is(err, campaign.ErrNoReformat):
		s.sendError(w, http.StatusConflict, err.Error())
	case errors.As(err, &imp):
		s.sendError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &transport), errors.As(err, &invalid), errors.As(err, &schemaErr):
		s.sendError(w, http.StatusBadGateway, err.Error())
	default:
		s.sendError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, ErrorResponse{Error: message})
}
