package web

import (
	"encoding/json"
	"net/http"

	"github.com/capitolyouth/admin/internal/access"
	"github.com/capitolyouth/admin/internal/roster"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// importRequest is the JSON body for both import preview and import execute.
type importRequest struct {
	Kind       string `json:"kind"`
	CSV        string `json:"csv"`
	SendEmails bool   `json:"sendEmails"`
}

// requestScope extracts the pieces every handler needs: the authenticated
// caller and the program year id from the URL.
func requestScope(r *http.Request) (access.Caller, uuid.UUID, error) {
	caller, ok := access.CallerFromContext(r.Context())
	if !ok {
		return access.Caller{}, uuid.Nil, roster.Forbidden("no authenticated caller")
	}

	yearID, err := uuid.Parse(chi.URLParam(r, "yearID"))
	if err != nil {
		return access.Caller{}, uuid.Nil, roster.BadRequest("invalid program year id")
	}
	return caller, yearID, nil
}

// decodeJSON parses the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return roster.BadRequest("invalid JSON body: %v", err)
	}
	return nil
}

// handleImportPreview runs the read-only CSV analysis.
// POST /api/program-years/{yearID}/import/preview
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	caller, yearID, err := requestScope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := s.service.PreviewImport(r.Context(), caller, yearID, roster.ParticipantKind(req.Kind), req.CSV)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleImport executes the CSV import.
// POST /api/program-years/{yearID}/import
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	caller, yearID, err := requestScope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	outcome, err := s.service.ExecuteImport(r.Context(), caller, yearID, roster.ParticipantKind(req.Kind), req.CSV, req.SendEmails)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// handleImportTemplate serves the downloadable CSV template for a kind.
// GET /api/program-years/{yearID}/import/template?kind=delegate|staff
func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	if _, _, err := requestScope(r); err != nil {
		respondError(w, r, err)
		return
	}

	kind := roster.ParticipantKind(r.URL.Query().Get("kind"))
	body, err := roster.Template(kind)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(kind)+`_import_template.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// handleAssignmentPreview simulates a balanced assignment run without writes.
// POST /api/program-years/{yearID}/assignments/preview
func (s *Server) handleAssignmentPreview(w http.ResponseWriter, r *http.Request) {
	caller, yearID, err := requestScope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	preview, err := s.service.PreviewAssignment(r.Context(), caller, yearID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// handleAssignmentCommit runs the assignment engine and persists placements.
// POST /api/program-years/{yearID}/assignments/commit
func (s *Server) handleAssignmentCommit(w http.ResponseWriter, r *http.Request) {
	caller, yearID, err := requestScope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := s.service.CommitAssignment(r.Context(), caller, yearID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleListGroupings returns the active assignment-level groupings.
// GET /api/program-years/{yearID}/groupings
func (s *Server) handleListGroupings(w http.ResponseWriter, r *http.Request) {
	caller, yearID, err := requestScope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	groupings, err := s.service.ListGroupings(r.Context(), caller, yearID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupingsResponse(groupings))
}

// handleListParties returns the active parties.
// GET /api/program-years/{yearID}/parties
func (s *Server) handleListParties(w http.ResponseWriter, r *http.Request) {
	caller, yearID, err := requestScope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	parties, err := s.service.ListParties(r.Context(), caller, yearID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, partiesResponse(parties))
}

type groupingItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type partyItem struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

func groupingsResponse(gs []roster.GroupingActivation) map[string][]groupingItem {
	items := make([]groupingItem, 0, len(gs))
	for _, g := range gs {
		items = append(items, groupingItem{ID: g.GroupingID, Name: g.Name})
	}
	return map[string][]groupingItem{"groupings": items}
}

func partiesResponse(ps []roster.PartyActivation) map[string][]partyItem {
	items := make([]partyItem, 0, len(ps))
	for _, p := range ps {
		items = append(items, partyItem{ID: p.PartyID, Name: p.Name, Color: p.Color})
	}
	return map[string][]partyItem{"parties": items}
}
