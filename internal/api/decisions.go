package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clarityworks/clarity/internal/events"
	"github.com/clarityworks/clarity/internal/narrative"
	"github.com/clarityworks/clarity/internal/report"
	"github.com/clarityworks/clarity/internal/scoring"
	"github.com/clarityworks/clarity/internal/store"
)

type DecisionsHandler struct {
	store             store.Store
	events            events.Client
	exporter          *report.Exporter
	defaultRiskFactor int
}

func NewDecisionsHandler(s store.Store, e events.Client, exp *report.Exporter, defaultRiskFactor int) *DecisionsHandler {
	return &DecisionsHandler{store: s, events: e, exporter: exp, defaultRiskFactor: defaultRiskFactor}
}

type DecisionRequest struct {
	Title      string              `json:"title"`
	Criteria   []scoring.Criterion `json:"criteria"`
	Options    []scoring.Option    `json:"options"`
	RiskFactor *int                `json:"risk_factor,omitempty"`
}

func (req *DecisionRequest) toDecision(defaultRiskFactor int) (*store.Decision, error) {
	riskFactor := defaultRiskFactor
	if req.RiskFactor != nil {
		riskFactor = *req.RiskFactor
	}
	if err := validateSnapshot(req.Criteria, req.Options, riskFactor); err != nil {
		return nil, err
	}
	return &store.Decision{
		Title:      req.Title,
		Criteria:   req.Criteria,
		Options:    req.Options,
		RiskFactor: riskFactor,
	}, nil
}

// Create handles POST /api/v1/decisions
func (h *DecisionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title required"})
		return
	}

	d, err := req.toDecision(h.defaultRiskFactor)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.store.CreateDecision(r.Context(), d); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectDecisionCreated(d.ID.String()), events.DecisionCreatedEvent{
			DecisionID: d.ID.String(),
			Title:      d.Title,
			Criteria:   len(d.Criteria),
			Options:    len(d.Options),
			RiskFactor: d.RiskFactor,
		})
	}

	writeJSON(w, http.StatusCreated, d)
}

// List handles GET /api/v1/decisions
func (h *DecisionsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.DecisionFilter{
		Title: r.URL.Query().Get("title"),
		Limit: 50,
	}

	decisions, err := h.store.ListDecisions(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if decisions == nil {
		decisions = []*store.Decision{}
	}
	writeJSON(w, http.StatusOK, decisions)
}

// Get handles GET /api/v1/decisions/{id}
func (h *DecisionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDecision(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Update handles PUT /api/v1/decisions/{id}. It replaces the full snapshot
// (criteria, options, risk factor) and clears any previous scoring pass.
func (h *DecisionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid decision id"})
		return
	}

	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title required"})
		return
	}

	d, err := req.toDecision(h.defaultRiskFactor)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d.ID = id

	if err := h.store.UpdateDecision(r.Context(), d); err != nil {
		if err == pgx.ErrNoRows {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "decision not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// Delete handles DELETE /api/v1/decisions/{id}
func (h *DecisionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid decision id"})
		return
	}

	if err := h.store.DeleteDecision(r.Context(), id); err != nil {
		if err == pgx.ErrNoRows {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "decision not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Score handles POST /api/v1/decisions/{id}/score. The stored snapshot is
// scored, the pass is persisted, and a scored event goes out.
func (h *DecisionsHandler) Score(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDecision(w, r)
	if !ok {
		return
	}

	results := scoring.Score(d.Options, d.Criteria, d.RiskFactor)
	text := explainResults(d.Criteria, results)

	scoredAt := time.Now().UTC()
	if err := h.store.SaveResults(r.Context(), d.ID, results, text); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil && len(results) > 0 {
		_ = h.events.Publish(events.SubjectDecisionScored(d.ID.String()), events.DecisionScoredEvent{
			DecisionID: d.ID.String(),
			Winner:     results[0].Name,
			TopScore:   results[0].FinalScore,
			RiskFactor: d.RiskFactor,
			ScoredAt:   scoredAt,
		})
	}

	writeJSON(w, http.StatusOK, ScoreResponse{
		Results:    results,
		Narrative:  text,
		RiskFactor: d.RiskFactor,
	})
}

// Explain handles GET /api/v1/decisions/{id}/explain. It returns the scoring
// breakdown for the latest persisted pass.
func (h *DecisionsHandler) Explain(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDecision(w, r)
	if !ok {
		return
	}
	if d.Results == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "decision not scored yet"})
		return
	}

	resp := map[string]interface{}{
		"decision_id": d.ID,
		"risk_factor": d.RiskFactor,
		"narrative":   d.Narrative,
		"results":     d.Results,
		"scored_at":   d.ScoredAt,
	}

	if len(d.Results) >= 2 && d.Results[0].FinalScore > 0 {
		winner := d.Results[0]
		resp["winner"] = winner.Name
		resp["runner_up"] = d.Results[1].Name
		resp["margin"] = winner.FinalScore - d.Results[1].FinalScore
		if strength := narrative.PrimaryStrength(winner.Option, d.Criteria); strength != nil {
			resp["primary_strength"] = strength.Name
		}

		contributions := make([]map[string]interface{}, 0, len(d.Criteria))
		for _, c := range d.Criteria {
			contributions = append(contributions, map[string]interface{}{
				"criterion": c.Name,
				"weight":    c.Weight,
				"score":     winner.ScoreFor(c.ID),
				"weighted":  winner.ScoreFor(c.ID) * c.Weight,
			})
		}
		resp["contributions"] = contributions
	}

	writeJSON(w, http.StatusOK, resp)
}

// Export handles POST /api/v1/decisions/{id}/export. Exporter failures are
// contained here: logged upstream, reported as a generic notice, never fatal.
func (h *DecisionsHandler) Export(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDecision(w, r)
	if !ok {
		return
	}
	if d.Results == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "score the decision before exporting"})
		return
	}

	path, err := h.exporter.Export(d.Title, d.Criteria, d.Results, d.Narrative)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "report export failed"})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectReportExported(d.ID.String()), events.ReportExportedEvent{
			DecisionID: d.ID.String(),
			Title:      d.Title,
			Artifact:   path,
		})
	}

	writeJSON(w, http.StatusOK, map[string]string{"report": path})
}

func (h *DecisionsHandler) loadDecision(w http.ResponseWriter, r *http.Request) (*store.Decision, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid decision id"})
		return nil, false
	}

	d, err := h.store.GetDecision(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	if d == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "decision not found"})
		return nil, false
	}
	return d, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
