package app

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cimillas/aplay-admin/internal/domain"
)

// DraftZone is the transient representation of a zone during one event
// edit session. Name, price and capacity arrive as free text pending
// validation; DBID plus the Existing flag link the draft to a persisted
// row and are the only identity used when diffing (names are not
// unique).
type DraftZone struct {
	LocalID     string
	DBID        string
	Existing    bool
	Name        string
	Price       string
	Capacity    string
	Description string
}

// ZoneStore is the persistence surface the reconciler drives. DeleteZones
// removes the given ids in one statement; updates and inserts are issued
// per row.
type ZoneStore interface {
	DeleteZones(ctx context.Context, eventID string, ids []string) error
	UpdateZone(ctx context.Context, zone domain.Zone) error
	InsertZone(ctx context.Context, zone domain.Zone) error
	ListZonesByEvent(ctx context.Context, eventID string) ([]domain.Zone, error)
}

// PartialApplyError reports a failure partway through the
// delete/update/insert sequence. Statements already applied are not
// rolled back; callers must re-fetch and re-diff before retrying rather
// than replaying the remaining steps.
type PartialApplyError struct {
	Applied int
	Err     error
}

func (e *PartialApplyError) Error() string {
	return fmt.Sprintf("zone sequence failed after %d applied statements: %v", e.Applied, e.Err)
}

func (e *PartialApplyError) Unwrap() error { return e.Err }

// ZoneReconciler turns an edited list of draft zones into the minimal
// set of persistence operations, never recreating a row the user only
// modified (existing bookings reference zone ids).
type ZoneReconciler struct {
	store ZoneStore
}

func NewZoneReconciler(store ZoneStore) *ZoneReconciler {
	return &ZoneReconciler{store: store}
}

// Reconcile validates the current drafts, diffs them against the
// originals by DBID, applies deletions first (one batched statement)
// and then per-row updates and inserts, and returns the canonical
// post-commit zone list. No write is issued when validation fails.
func (r *ZoneReconciler) Reconcile(ctx context.Context, eventID string, original, current []DraftZone) ([]domain.Zone, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}

	plan, err := planZones(eventID, original, current)
	if err != nil {
		return nil, err
	}

	applied := 0
	fail := func(err error) error {
		if applied == 0 {
			return err
		}
		return &PartialApplyError{Applied: applied, Err: err}
	}

	if len(plan.deleteIDs) > 0 {
		if err := r.store.DeleteZones(ctx, eventID, plan.deleteIDs); err != nil {
			return nil, fail(fmt.Errorf("delete zones: %w", err))
		}
		applied++
	}
	for _, zone := range plan.updates {
		if err := r.store.UpdateZone(ctx, zone); err != nil {
			return nil, fail(fmt.Errorf("update zone %s: %w", zone.ID, err))
		}
		applied++
	}
	for _, zone := range plan.inserts {
		if err := r.store.InsertZone(ctx, zone); err != nil {
			return nil, fail(fmt.Errorf("insert zone %q: %w", zone.Name, err))
		}
		applied++
	}

	zones, err := r.store.ListZonesByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list zones after reconcile: %w", err)
	}
	return zones, nil
}

type zonePlan struct {
	deleteIDs []string
	updates   []domain.Zone
	inserts   []domain.Zone
}

// planZones computes the diff. Updates are valid drafts still marked
// Existing with a DBID; inserts are valid drafts with no DBID; deletions
// are every original id missing from the update set. A draft keeping a
// DBID with Existing cleared lands in no set, so its persisted row falls
// to the delete pass. Blank rows (all fields empty) are skipped; a
// non-blank row that fails validation poisons the whole edit.
func planZones(eventID string, original, current []DraftZone) (zonePlan, error) {
	var (
		plan       zonePlan
		anyInvalid bool
		surviving  = make(map[string]struct{})
	)

	for _, draft := range current {
		if draftIsBlank(draft) {
			continue
		}
		zone, ok := parseDraft(eventID, draft)
		if !ok {
			anyInvalid = true
			continue
		}
		switch {
		case draft.Existing && draft.DBID != "":
			zone.ID = draft.DBID
			surviving[draft.DBID] = struct{}{}
			plan.updates = append(plan.updates, zone)
		case draft.DBID == "":
			zone.ID = newID()
			plan.inserts = append(plan.inserts, zone)
		}
	}

	if len(plan.updates)+len(plan.inserts) == 0 {
		return zonePlan{}, domain.ErrNoValidZones
	}
	if anyInvalid {
		return zonePlan{}, domain.ErrInvalidZoneFields
	}

	for _, draft := range original {
		if draft.DBID == "" {
			continue
		}
		if _, ok := surviving[draft.DBID]; !ok {
			plan.deleteIDs = append(plan.deleteIDs, draft.DBID)
		}
	}
	return plan, nil
}

func draftIsBlank(d DraftZone) bool {
	return strings.TrimSpace(d.Name) == "" &&
		strings.TrimSpace(d.Price) == "" &&
		strings.TrimSpace(d.Capacity) == ""
}

// parseDraft validates one draft: non-empty name, finite price >= 0,
// integer capacity >= 1. The zone id is assigned by the caller.
func parseDraft(eventID string, d DraftZone) (domain.Zone, bool) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return domain.Zone{}, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return domain.Zone{}, false
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(d.Capacity))
	if err != nil || capacity < 1 {
		return domain.Zone{}, false
	}
	return domain.Zone{
		EventID:     eventID,
		Name:        name,
		Price:       price,
		Capacity:    capacity,
		Description: strings.TrimSpace(d.Description),
	}, true
}
