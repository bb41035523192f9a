package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"progression-engine/pkg/catalog"
	"progression-engine/pkg/domain"
	"progression-engine/pkg/engine"
)

// Handlers exposes the engine's event, claim and read operations over HTTP.
type Handlers struct {
	engine  *engine.Engine
	catalog catalog.Catalog
}

// NewHandlers creates the player-facing handler set.
func NewHandlers(eng *engine.Engine, cat catalog.Catalog) *Handlers {
	return &Handlers{engine: eng, catalog: cat}
}

// claimRequest is the body of a claim call. Kind is optional; when present it
// must match the definition being claimed, guarding against a client claiming
// under the wrong tab.
type claimRequest struct {
	DefinitionID string                `json:"definition_id"`
	Kind         domain.DefinitionKind `json:"kind,omitempty"`
}

// HandleRecordEvent ingests one behavioral event for a player and fans it
// out across all matching definitions.
//
// POST /v1/players/{playerID}/events
func (h *Handlers) HandleRecordEvent(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	var event domain.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	if err := h.engine.RecordEvent(r.Context(), playerID, &event); err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: "event recorded"})
}

// HandleClaim claims a completed definition's reward for a player.
//
// POST /v1/players/{playerID}/claims
func (h *Handlers) HandleClaim(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid claim payload")
		return
	}
	if req.DefinitionID == "" {
		respondError(w, http.StatusBadRequest, "definition_id is required")
		return
	}
	if req.Kind != "" {
		if !req.Kind.IsValid() {
			respondError(w, http.StatusBadRequest, "invalid kind")
			return
		}
		if def := h.catalog.GetDefinition(req.DefinitionID); def != nil && def.Kind != req.Kind {
			respondError(w, http.StatusBadRequest, "kind does not match definition")
			return
		}
	}

	if err := h.engine.Claim(r.Context(), playerID, req.DefinitionID); err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "reward claimed"})
}

// HandleGetProgress lists a player's progress records, optionally filtered by
// definition kind via ?kind=achievement|challenge|quest.
//
// GET /v1/players/{playerID}/progress
func (h *Handlers) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	kind := domain.DefinitionKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid kind")
		return
	}

	records, err := h.engine.ListPlayerProgress(r.Context(), playerID, kind)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: records})
}

// HandleGetDefinitionProgress returns a player's record for one definition.
//
// GET /v1/players/{playerID}/progress/{definitionID}
func (h *Handlers) HandleGetDefinitionProgress(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	definitionID := chi.URLParam(r, "definitionID")

	record, err := h.engine.GetProgress(r.Context(), playerID, definitionID)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	if record == nil {
		respondError(w, http.StatusNotFound, "no progress for definition")
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: record})
}
