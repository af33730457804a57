package roster

// refs.go builds the per-request lookup tables: active groupings at the
// assignment level, active parties, and the set of emails already known to
// the user table. Activation rows can carry duplicates of the same
// underlying grouping or party; the first occurrence wins and later ones
// are discarded. Name matching is case-insensitive.

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ReferenceMaps is the request-scoped lookup state shared by the validator,
// preview engine, importer, and assignment engine.
type ReferenceMaps struct {
	// Groupings and Parties preserve activation order; the assignment
	// engine's tie-break depends on iterating them in this stable order.
	Groupings []GroupingActivation
	Parties   []PartyActivation

	groupingByName map[string]GroupingActivation
	partyByName    map[string]PartyActivation
	knownEmails    map[string]struct{}
}

// GroupingByName resolves a grouping case-insensitively by name.
func (m *ReferenceMaps) GroupingByName(name string) (GroupingActivation, bool) {
	g, ok := m.groupingByName[strings.ToLower(strings.TrimSpace(name))]
	return g, ok
}

// PartyByName resolves a party case-insensitively by name.
func (m *ReferenceMaps) PartyByName(name string) (PartyActivation, bool) {
	p, ok := m.partyByName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// EmailKnown reports whether the email already belongs to a user.
func (m *ReferenceMaps) EmailKnown(email string) bool {
	_, ok := m.knownEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// loadReferences builds the lookup tables for one program year. The email
// set is restricted to the emails actually present in the submitted rows so
// the user table is probed once per request rather than per row.
func (s *Service) loadReferences(ctx context.Context, programYearID uuid.UUID, rows []ImportRow) (*ReferenceMaps, error) {
	refs := &ReferenceMaps{
		groupingByName: make(map[string]GroupingActivation),
		partyByName:    make(map[string]PartyActivation),
		knownEmails:    make(map[string]struct{}),
	}

	groupings, err := s.refs.ListActiveGroupings(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("list active groupings: %w", err)
	}
	seenGroupings := make(map[uuid.UUID]struct{}, len(groupings))
	for _, g := range groupings {
		if !g.IsAssignmentLevel {
			continue
		}
		if _, dup := seenGroupings[g.GroupingID]; dup {
			continue
		}
		seenGroupings[g.GroupingID] = struct{}{}
		refs.Groupings = append(refs.Groupings, g)
		refs.groupingByName[strings.ToLower(g.Name)] = g
	}

	parties, err := s.refs.ListActiveParties(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("list active parties: %w", err)
	}
	seenParties := make(map[uuid.UUID]struct{}, len(parties))
	for _, p := range parties {
		if _, dup := seenParties[p.PartyID]; dup {
			continue
		}
		seenParties[p.PartyID] = struct{}{}
		refs.Parties = append(refs.Parties, p)
		refs.partyByName[strings.ToLower(p.Name)] = p
	}

	emails := collectEmails(rows)
	if len(emails) > 0 {
		known, err := s.refs.FilterKnownEmails(ctx, emails)
		if err != nil {
			return nil, fmt.Errorf("filter known emails: %w", err)
		}
		for e := range known {
			refs.knownEmails[strings.ToLower(e)] = struct{}{}
		}
	}

	return refs, nil
}

// collectEmails gathers every participant and parent email in the rows,
// lower-cased and deduplicated.
func collectEmails(rows []ImportRow) []string {
	seen := make(map[string]struct{})
	var emails []string
	add := func(v string) {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		emails = append(emails, v)
	}

	for _, row := range rows {
		add(row.Get(ColEmail))
		add(row.Get(ColParentEmail))
	}
	return emails
}
