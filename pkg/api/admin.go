package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"progression-engine/pkg/catalog"
	"progression-engine/pkg/domain"
)

// CatalogHandlers serves the read-only catalog surface and the admin CRUD
// for definitions and bonus templates. Admin writes mutate the in-memory
// catalog only; the backing config file is the durable source and can be
// re-applied with the reload endpoint.
type CatalogHandlers struct {
	catalog  catalog.Catalog
	validate *validator.Validate
}

// NewCatalogHandlers creates the catalog handler set.
func NewCatalogHandlers(cat catalog.Catalog) *CatalogHandlers {
	return &CatalogHandlers{
		catalog:  cat,
		validate: validator.New(),
	}
}

// definitionRequest is the admin upsert body for a definition. Structural
// validation happens via tags; semantic validation (trigger targets, reward
// wiring) reuses the catalog config validator at reload time.
type definitionRequest struct {
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description"`
	Kind        domain.DefinitionKind   `json:"kind" validate:"required,oneof=achievement challenge quest"`
	Status      domain.DefinitionStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Priority    int                     `json:"priority"`
	Trigger     domain.Trigger          `json:"trigger"`
	Vertical    domain.Vertical         `json:"vertical" validate:"omitempty,oneof=casino sportsbook live_casino cross_vertical"`
	Filters     *domain.FilterSet       `json:"filters"`
	Reward      domain.Reward           `json:"reward"`
	Frequency   domain.Frequency        `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	StartDate   time.Time               `json:"start_date"`
	EndDate     *time.Time              `json:"end_date"`
	AutoReset   bool                    `json:"auto_reset"`
	Steps       []*domain.Step          `json:"steps" validate:"omitempty,dive,required"`
}

// bonusTemplateRequest is the admin upsert body for a bonus template.
type bonusTemplateRequest struct {
	Name               string  `json:"name" validate:"required"`
	Amount             float64 `json:"amount" validate:"required,gt=0"`
	WageringMultiplier float64 `json:"wagering_multiplier" validate:"gte=0"`
	ExpiryDays         int     `json:"expiry_days" validate:"gte=0"`
}

// HandleListDefinitions returns every catalog definition.
//
// GET /v1/catalog/definitions
func (h *CatalogHandlers) HandleListDefinitions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.catalog.AllDefinitions()})
}

// HandleGetDefinition returns one catalog definition.
//
// GET /v1/catalog/definitions/{definitionID}
func (h *CatalogHandlers) HandleGetDefinition(w http.ResponseWriter, r *http.Request) {
	def := h.catalog.GetDefinition(chi.URLParam(r, "definitionID"))
	if def == nil {
		respondError(w, http.StatusNotFound, "definition not found")
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: def})
}

// HandleUpsertDefinition creates or replaces a definition.
//
// PUT /v1/admin/definitions/{definitionID}
func (h *CatalogHandlers) HandleUpsertDefinition(w http.ResponseWriter, r *http.Request) {
	definitionID := chi.URLParam(r, "definitionID")

	var req definitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid definition payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}
	if !req.Trigger.Type.IsValid() && req.Kind != domain.KindQuest {
		respondError(w, http.StatusBadRequest, "unknown trigger type")
		return
	}

	def := &domain.Definition{
		ID:          definitionID,
		Title:       req.Title,
		Description: req.Description,
		Kind:        req.Kind,
		Status:      req.Status,
		Priority:    req.Priority,
		Trigger:     req.Trigger,
		Vertical:    req.Vertical,
		Filters:     req.Filters,
		Reward:      req.Reward,
		Frequency:   req.Frequency,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		AutoReset:   req.AutoReset,
		Steps:       req.Steps,
	}
	if def.Status == "" {
		def.Status = domain.DefinitionStatusActive
	}

	h.catalog.UpsertDefinition(def)
	respondJSON(w, http.StatusOK, DataResponse{Data: def})
}

// HandleDeleteDefinition removes a definition from the catalog.
//
// DELETE /v1/admin/definitions/{definitionID}
func (h *CatalogHandlers) HandleDeleteDefinition(w http.ResponseWriter, r *http.Request) {
	h.catalog.DeleteDefinition(chi.URLParam(r, "definitionID"))
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "definition deleted"})
}

// HandleUpsertBonusTemplate creates or replaces a bonus template.
//
// PUT /v1/admin/bonus-templates/{templateID}
func (h *CatalogHandlers) HandleUpsertBonusTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateID")

	var req bonusTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid template payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	tpl := &domain.BonusTemplate{
		ID:                 templateID,
		Name:               req.Name,
		Amount:             req.Amount,
		WageringMultiplier: req.WageringMultiplier,
		ExpiryDays:         req.ExpiryDays,
	}
	h.catalog.UpsertBonusTemplate(tpl)
	respondJSON(w, http.StatusOK, DataResponse{Data: tpl})
}

// HandleDeleteBonusTemplate removes a bonus template.
//
// DELETE /v1/admin/bonus-templates/{templateID}
func (h *CatalogHandlers) HandleDeleteBonusTemplate(w http.ResponseWriter, r *http.Request) {
	h.catalog.DeleteBonusTemplate(chi.URLParam(r, "templateID"))
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "bonus template deleted"})
}

// HandleReloadCatalog re-reads the catalog config file, discarding admin
// mutations made since the last load.
//
// POST /v1/admin/catalog/reload
func (h *CatalogHandlers) HandleReloadCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Reload(); err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "catalog reloaded"})
}
