package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crmlite/crm-core/internal/contact"
)

// contactRequest is the JSON body accepted by create and update.
type contactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
}

// toContact converts the request body into a normalised domain Contact.
func (req *contactRequest) toContact() contact.Contact {
	c := contact.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	}
	contact.Normalize(&c)
	return c
}

// handleListContacts returns contacts with filtering, pagination, and sorting.
//
// Query parameters: company (case-insensitive exact match), search (substring
// over name/email), limit (1-50, default 10), offset (default 0), sort_by
// (id, name, email, company, created_at), order (asc, desc).
func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListQuery(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	result, err := s.contacts.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("listing contacts failed", "error", err)
		writeInternalError(w, "failed to list contacts")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetContact returns a single contact by ID.
func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id, err := parseContactID(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	c, err := s.contacts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			writeNotFound(w, "contact not found")
			return
		}
		s.logger.Error("getting contact failed", "id", id, "error", err)
		writeInternalError(w, "failed to get contact")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleCreateContact creates a new contact.
//
// Responds 201 with the created record, 422 on validation failure, and 409
// when the email is already in use.
func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	c := req.toContact()
	if err := contact.Validate(&c); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := s.contacts.Create(r.Context(), &c); err != nil {
		if errors.Is(err, contact.ErrDuplicateEmail) {
			writeConflict(w, "email already exists")
			return
		}
		s.logger.Error("creating contact failed", "error", err)
		writeInternalError(w, "failed to create contact")
		return
	}

	s.logger.Info("contact created", "id", c.ID)
	writeJSON(w, http.StatusCreated, c)
}

// handleUpdateContact replaces a contact's mutable fields.
//
// The body carries the full new state (name and email are required again);
// id and created_at never change.
func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := parseContactID(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	c := req.toContact()
	if err := contact.Validate(&c); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	c.ID = id

	if err := s.contacts.Update(r.Context(), &c); err != nil {
		switch {
		case errors.Is(err, contact.ErrNotFound):
			writeNotFound(w, "contact not found")
		case errors.Is(err, contact.ErrDuplicateEmail):
			writeConflict(w, "email already exists")
		default:
			s.logger.Error("updating contact failed", "id", id, "error", err)
			writeInternalError(w, "failed to update contact")
		}
		return
	}

	s.logger.Info("contact updated", "id", c.ID)
	writeJSON(w, http.StatusOK, c)
}

// handleDeleteContact removes a contact by ID. Responds 204 on success.
func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := parseContactID(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := s.contacts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			writeNotFound(w, "contact not found")
			return
		}
		s.logger.Error("deleting contact failed", "id", id, "error", err)
		writeInternalError(w, "failed to delete contact")
		return
	}

	s.logger.Info("contact deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleExportContacts streams the contact list as a CSV or XLSX download.
//
// The company, search, sort_by, and order parameters apply as in the list
// endpoint; pagination does not (exports always cover the full match).
func (s *Server) handleExportContacts(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		writeValidationError(w, fmt.Sprintf("unsupported export format %q (expected csv or xlsx)", format))
		return
	}

	filter, err := parseFilterQuery(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	contacts, err := s.contacts.ListAll(r.Context(), filter)
	if err != nil {
		s.logger.Error("exporting contacts failed", "error", err)
		writeInternalError(w, "failed to export contacts")
		return
	}

	filename := fmt.Sprintf("contacts-%s.%s", time.Now().UTC().Format("20060102"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		if err := contact.WriteCSV(w, contacts); err != nil {
			// Headers are already sent; all we can do is log
			s.logger.Error("writing CSV export failed", "error", err)
		}
	case "xlsx":
		data, err := contact.ExportXLSX(contacts)
		if err != nil {
			s.logger.Error("rendering XLSX export failed", "error", err)
			w.Header().Del("Content-Disposition")
			writeInternalError(w, "failed to export contacts")
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write(data) //nolint:errcheck // Best-effort write to response
	}

	s.logger.Info("contacts exported", "format", format, "records", len(contacts))
}

// handleContactStats returns the total contact count and per-company tallies.
func (s *Server) handleContactStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := s.contacts.Count(ctx)
	if err != nil {
		s.logger.Error("counting contacts failed", "error", err)
		writeInternalError(w, "failed to compute stats")
		return
	}

	companies, err := s.contacts.CountByCompany(ctx)
	if err != nil {
		s.logger.Error("counting contacts by company failed", "error", err)
		writeInternalError(w, "failed to compute stats")
		return
	}
	if companies == nil {
		companies = []contact.CompanyCount{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":     total,
		"companies": companies,
	})
}

// parseContactID extracts and validates the {id} path parameter.
func parseContactID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("contact id must be a positive integer")
	}
	return id, nil
}

// parseFilterQuery extracts the filtering and sorting parameters shared by
// the list and export endpoints.
//
// An order value outside asc/desc is a validation error; an unknown sort_by
// is tolerated and falls back to id ordering in the repository.
func parseFilterQuery(r *http.Request) (contact.ListFilter, error) {
	query := r.URL.Query()
	filter := contact.ListFilter{
		Company: query.Get("company"),
		Search:  query.Get("search"),
		SortBy:  query.Get("sort_by"),
		Order:   query.Get("order"),
	}

	if filter.Order != "" && filter.Order != "asc" && filter.Order != "desc" {
		return filter, fmt.Errorf("order must be asc or desc")
	}

	return filter, nil
}

// parseListQuery extracts list filtering, pagination, and sorting parameters.
//
// Out-of-range limit/offset values are validation errors (mirroring the list
// endpoint's documented bounds).
func parseListQuery(r *http.Request) (contact.ListFilter, error) {
	filter, err := parseFilterQuery(r)
	if err != nil {
		return filter, err
	}
	filter.Limit = contact.DefaultLimit

	query := r.URL.Query()

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > contact.MaxLimit {
			return filter, fmt.Errorf("limit must be an integer between 1 and %d", contact.MaxLimit)
		}
		filter.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return filter, fmt.Errorf("offset must be a non-negative integer")
		}
		filter.Offset = offset
	}

	return filter, nil
}
