package roster

// assign.go distributes unassigned delegates across the (grouping, party)
// partition. The strategy is greedy: each delegate goes to the globally
// least-loaded grouping and, within it, the least-loaded party, with counters
// updated immediately so every decision sees the one before it. Ties go to
// the first minimum in activation order, which keeps a run reproducible for
// a fixed shuffle. Preview and commit run the identical computation; only
// persistence differs, and both recompute counters fresh from storage.

import (
	"context"
	"fmt"

	"github.com/capitolyouth/admin/internal/access"
	"github.com/capitolyouth/admin/internal/logging"
	"github.com/google/uuid"
)

// previewAssignmentCap limits the per-delegate list returned by preview.
// Load summaries always cover the whole pool.
const previewAssignmentCap = 50

// balanceRun is the shared result of one assignment computation.
type balanceRun struct {
	refs       *ReferenceMaps
	unassigned []Delegate
	placements []Placement

	existingGrouping map[uuid.UUID]int
	existingParty    map[uuid.UUID]int
	addedGrouping    map[uuid.UUID]int
	addedParty       map[uuid.UUID]int
}

// PreviewAssignment simulates a balancing run without persisting anything.
func (s *Service) PreviewAssignment(ctx context.Context, caller access.Caller, programYearID uuid.UUID) (*AssignmentPreview, error) {
	run, err := s.computeAssignments(ctx, caller, programYearID)
	if err != nil {
		return nil, err
	}

	assignments := run.placements
	if len(assignments) > previewAssignmentCap {
		assignments = assignments[:previewAssignmentCap]
	}

	return &AssignmentPreview{
		Unassigned:  len(run.unassigned),
		Assignments: assignments,
		Groupings:   run.groupingLoads(),
		Parties:     run.partyLoads(),
	}, nil
}

// CommitAssignment runs the balancing computation and persists every
// placement, promoting pending_assignment delegates to active. A failure on
// one delegate is counted and logged but does not stop the loop.
func (s *Service) CommitAssignment(ctx context.Context, caller access.Caller, programYearID uuid.UUID) (*AssignmentResult, error) {
	run, err := s.computeAssignments(ctx, caller, programYearID)
	if err != nil {
		return nil, err
	}

	log := logging.WithFields(ctx, "program_year", programYearID.String())

	statusByID := make(map[uuid.UUID]string, len(run.unassigned))
	for _, d := range run.unassigned {
		statusByID[d.ID] = d.Status
	}

	result := &AssignmentResult{Failures: []ImportFailure{}}
	for _, p := range run.placements {
		status := statusByID[p.DelegateID]
		if status == StatusPendingAssignment {
			status = StatusActive
		}

		if err := s.participants.UpdateDelegatePlacement(ctx, p.DelegateID, p.GroupingID, p.PartyID, status); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, ImportFailure{
				Email: p.Email,
				Error: fmt.Sprintf("update delegate: %v", err),
			})
			log.Warn("assignment failed", "delegate", p.DelegateID.String(), "error", err)
			continue
		}

		result.Assigned++
		log.Info("delegate assigned",
			"delegate", p.DelegateID.String(),
			"email", p.Email,
			"grouping", p.GroupingName,
			"party", p.PartyName,
		)
	}

	result.Groupings = run.groupingLoads()
	result.Parties = run.partyLoads()
	return result, nil
}

// computeAssignments loads references and delegates, seeds load counters
// from already-assigned delegates, and greedily places the unassigned pool.
func (s *Service) computeAssignments(ctx context.Context, caller access.Caller, programYearID uuid.UUID) (*balanceRun, error) {
	if _, err := s.authorizeYear(ctx, caller, programYearID); err != nil {
		return nil, err
	}

	refs, err := s.loadReferences(ctx, programYearID, nil)
	if err != nil {
		return nil, err
	}
	if len(refs.Groupings) == 0 {
		return nil, BadRequest("no active assignment-level groupings for this program year")
	}
	if len(refs.Parties) == 0 {
		return nil, BadRequest("no active parties for this program year")
	}

	delegates, err := s.participants.ListDelegates(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("list delegates: %w", err)
	}

	var assigned, unassigned []Delegate
	for _, d := range delegates {
		if d.Status == StatusWithdrawn {
			continue
		}
		if d.Assigned() {
			assigned = append(assigned, d)
		} else {
			unassigned = append(unassigned, d)
		}
	}
	if len(unassigned) == 0 {
		return nil, BadRequest("no unassigned delegates for this program year")
	}

	// Every active (grouping, party) pair gets a counter cell, zero or not.
	groupingTotal := make(map[uuid.UUID]int, len(refs.Groupings))
	partyCount := make(map[uuid.UUID]map[uuid.UUID]int, len(refs.Groupings))
	for _, g := range refs.Groupings {
		groupingTotal[g.GroupingID] = 0
		cells := make(map[uuid.UUID]int, len(refs.Parties))
		for _, p := range refs.Parties {
			cells[p.PartyID] = 0
		}
		partyCount[g.GroupingID] = cells
	}

	run := &balanceRun{
		refs:             refs,
		unassigned:       unassigned,
		existingGrouping: make(map[uuid.UUID]int),
		existingParty:    make(map[uuid.UUID]int),
		addedGrouping:    make(map[uuid.UUID]int),
		addedParty:       make(map[uuid.UUID]int),
	}

	for _, d := range assigned {
		gid, pid := *d.GroupingID, *d.PartyID
		if _, eligible := groupingTotal[gid]; !eligible {
			continue
		}
		groupingTotal[gid]++
		run.existingGrouping[gid]++
		if _, active := partyCount[gid][pid]; active {
			partyCount[gid][pid]++
			run.existingParty[pid]++
		}
	}

	s.shuffle(len(unassigned), func(i, j int) {
		unassigned[i], unassigned[j] = unassigned[j], unassigned[i]
	})

	groupingName := make(map[uuid.UUID]string, len(refs.Groupings))
	for _, g := range refs.Groupings {
		groupingName[g.GroupingID] = g.Name
	}
	partyName := make(map[uuid.UUID]string, len(refs.Parties))
	for _, p := range refs.Parties {
		partyName[p.PartyID] = p.Name
	}

	for _, d := range unassigned {
		gid := pickLeastLoadedGrouping(refs.Groupings, groupingTotal)
		pid := pickLeastLoadedParty(refs.Parties, partyCount[gid])

		groupingTotal[gid]++
		partyCount[gid][pid]++
		run.addedGrouping[gid]++
		run.addedParty[pid]++

		run.placements = append(run.placements, Placement{
			DelegateID:   d.ID,
			FirstName:    d.FirstName,
			LastName:     d.LastName,
			Email:        d.Email,
			GroupingID:   gid,
			GroupingName: groupingName[gid],
			PartyID:      pid,
			PartyName:    partyName[pid],
		})
	}

	return run, nil
}

// pickLeastLoadedGrouping returns the grouping with the minimum total load.
// The scan iterates in activation order so the first minimum wins ties.
func pickLeastLoadedGrouping(groupings []GroupingActivation, totals map[uuid.UUID]int) uuid.UUID {
	best := groupings[0].GroupingID
	for _, g := range groupings[1:] {
		if totals[g.GroupingID] < totals[best] {
			best = g.GroupingID
		}
	}
	return best
}

// pickLeastLoadedParty returns the least-loaded party within one grouping,
// first minimum in activation order winning ties.
func pickLeastLoadedParty(parties []PartyActivation, counts map[uuid.UUID]int) uuid.UUID {
	best := parties[0].PartyID
	for _, p := range parties[1:] {
		if counts[p.PartyID] < counts[best] {
			best = p.PartyID
		}
	}
	return best
}

func (r *balanceRun) groupingLoads() []GroupingLoad {
	loads := make([]GroupingLoad, 0, len(r.refs.Groupings))
	for _, g := range r.refs.Groupings {
		existing := r.existingGrouping[g.GroupingID]
		added := r.addedGrouping[g.GroupingID]
		loads = append(loads, GroupingLoad{
			GroupingID: g.GroupingID,
			Name:       g.Name,
			Existing:   existing,
			Added:      added,
			Total:      existing + added,
		})
	}
	return loads
}

func (r *balanceRun) partyLoads() []PartyLoad {
	loads := make([]PartyLoad, 0, len(r.refs.Parties))
	for _, p := range r.refs.Parties {
		existing := r.existingParty[p.PartyID]
		added := r.addedParty[p.PartyID]
		loads = append(loads, PartyLoad{
			PartyID:  p.PartyID,
			Name:     p.Name,
			Existing: existing,
			Added:    added,
			Total:    existing + added,
		})
	}
	return loads
}
