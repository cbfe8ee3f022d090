package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/reflora/server/internal/logger"
	"github.com/reflora/server/internal/model"
)

// Company handles company CRUD requests.
type Company struct {
	store  model.CompanyStore
	logger *logger.Logger
}

// NewCompany creates a Company handler.
func NewCompany(store model.CompanyStore, l *logger.Logger) *Company {
	return &Company{
		store:  store,
		logger: l,
	}
}

type createCompanyRequest struct {
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}

// Create registers a new company.
func (h *Company) Create(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, model.NewValidationError("body", "malformed JSON"))
		return
	}
	if req.Name == "" {
		writeError(w, h.logger, model.NewValidationError("name", "must not be empty"))
		return
	}

	company, err := h.store.Create(r.Context(), model.Company{
		Name: req.Name,
		CNPJ: req.CNPJ,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, company)
}

// Get returns a single company.
func (h *Company) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, h.logger, model.NewValidationError("id", "must be an integer"))
		return
	}

	company, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, company)
}

// List returns all companies.
func (h *Company) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, companies)
}
