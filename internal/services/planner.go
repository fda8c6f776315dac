package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"route-shop-service/internal/domain"
)

// Detour attributed to fabricated placeholder vendors; always within any
// sensible budget.
const syntheticDetourKm = 0.2

// ItemQuantity pairs an item with a requested quantity.
type ItemQuantity struct {
	ItemID   string
	Quantity int
}

// PinnedGroup holds items the user picked while browsing one specific
// vendor's inventory. The group stands or falls with its vendor.
type PinnedGroup struct {
	VendorID string
	Items    []ItemQuantity
}

// GlobalSelection is a vendor-agnostic item request, matched to a suitable
// vendor by category. Slice order is the caller's and is significant.
type GlobalSelection struct {
	ItemID   string
	Quantity int
}

// VendorIDGenerator mints ids for synthetic vendors. Injected so tests can
// supply deterministic ids.
type VendorIDGenerator func(category string) string

// DefaultVendorIDGenerator derives synthetic vendor ids from random UUIDs.
func DefaultVendorIDGenerator(category string) string {
	return "on-route-" + category + "-" + uuid.NewString()[:8]
}

// PlanRequest is one immutable input snapshot for a planning run.
type PlanRequest struct {
	Pinned []PinnedGroup
	Global []GlobalSelection
	// Shops within the detour budget, as produced by discovery.
	Candidates []domain.CandidateVendor
	// Pinned vendors measured against the same trip, including ones beyond
	// the budget; the planner decides whether each group survives.
	PinnedVendors map[string]domain.CandidateVendor
	MaxDetourKm   float64
	Catalog       map[string]domain.CatalogItem
}

// DroppedGroup records a pinned group the planner discarded, so callers can
// show the user what was lost and why.
type DroppedGroup struct {
	VendorID string
	Reason   string
	Items    []ItemQuantity
}

// PlanResult carries the assignment plan plus the pinned groups that were
// dropped. For every surviving requested item, assigned quantities across
// entries sum to the requested quantity.
type PlanResult struct {
	Plan    *domain.AssignmentPlan
	Dropped []DroppedGroup
}

// PlanAssignments assigns every requested item to exactly one shop.
//
// Pass 1 places pinned groups whole, dropping any group whose vendor is
// unresolved or beyond the detour budget (logged, never fatal). Pass 2 walks
// global selections in caller order and, per item, tries: an entry already in
// the plan serving the category, then the closest unused candidate, then any
// matching candidate, and finally a fabricated on-route supplier — so every
// item always lands somewhere.
//
// Step one scans the plan per item, giving O(items x vendorsInPlan); fine at
// the expected scale of tens of each, and the ceiling to revisit if catalogs
// ever grow past that.
//
// Deterministic: identical inputs and a fixed id generator produce
// structurally identical plans.
func PlanAssignments(req PlanRequest, newVendorID VendorIDGenerator, logger *zap.Logger) *PlanResult {
	if newVendorID == nil {
		newVendorID = DefaultVendorIDGenerator
	}

	candidates := make([]domain.CandidateVendor, len(req.Candidates))
	copy(candidates, req.Candidates)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DetourKm != candidates[j].DetourKm {
			return candidates[i].DetourKm < candidates[j].DetourKm
		}
		return candidates[i].ID < candidates[j].ID
	})

	plan := domain.NewAssignmentPlan()
	result := &PlanResult{Plan: plan}
	assigned := make(map[string]int)

	// Pass 1: pinned groups, whole or not at all.
	for _, group := range req.Pinned {
		vendor, ok := req.PinnedVendors[group.VendorID]
		if !ok {
			result.Dropped = append(result.Dropped, DroppedGroup{
				VendorID: group.VendorID,
				Reason:   "vendor could not be resolved",
				Items:    group.Items,
			})
			logger.Warn("dropping pinned group: vendor unresolved",
				zap.String("op", "planner.PlanAssignments"),
				zap.String("vendor_id", group.VendorID),
			)
			continue
		}
		if vendor.DetourKm > req.MaxDetourKm {
			result.Dropped = append(result.Dropped, DroppedGroup{
				VendorID: group.VendorID,
				Reason:   "detour budget exceeded",
				Items:    group.Items,
			})
			logger.Warn("dropping pinned group: outside detour budget",
				zap.String("op", "planner.PlanAssignments"),
				zap.String("vendor_id", group.VendorID),
				zap.Float64("detour_km", vendor.DetourKm),
				zap.Float64("max_detour_km", req.MaxDetourKm),
			)
			continue
		}

		entry := plan.EnsureEntry(vendor)
		for _, iq := range group.Items {
			item, ok := req.Catalog[iq.ItemID]
			if !ok {
				logger.Warn("skipping pinned item missing from catalog",
					zap.String("op", "planner.PlanAssignments"),
					zap.String("item_id", iq.ItemID),
				)
				continue
			}
			if iq.Quantity <= 0 {
				continue
			}
			entry.Append(domain.PlanItem{
				ItemID:   item.ID,
				Name:     item.Name,
				Quantity: iq.Quantity,
				Price:    item.Price,
			})
			assigned[item.ID] += iq.Quantity
		}
	}

	// Pass 2: global selections, in caller order.
	for _, sel := range req.Global {
		item, ok := req.Catalog[sel.ItemID]
		if !ok {
			logger.Warn("skipping global item missing from catalog",
				zap.String("op", "planner.PlanAssignments"),
				zap.String("item_id", sel.ItemID),
			)
			continue
		}

		remaining := sel.Quantity - assigned[sel.ItemID]
		if remaining <= 0 {
			continue
		}

		line := domain.PlanItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: remaining,
			Price:    item.Price,
		}

		if entry := firstServingEntry(plan, item.Category); entry != nil {
			entry.Append(line)
			assigned[item.ID] += remaining
			continue
		}

		if vendor, ok := firstMatchingCandidate(candidates, plan, item.Category); ok {
			plan.EnsureEntry(vendor).Append(line)
			assigned[item.ID] += remaining
			continue
		}

		synthetic := syntheticVendor(item.Category, newVendorID(item.Category))
		plan.EnsureEntry(synthetic).Append(line)
		assigned[item.ID] += remaining
		logger.Info("no candidate serves category, fabricated on-route supplier",
			zap.String("op", "planner.PlanAssignments"),
			zap.String("item_id", item.ID),
			zap.String("category", item.Category),
			zap.String("vendor_id", synthetic.ID),
		)
	}

	return result
}

// firstServingEntry scans plan entries in creation order for one whose vendor
// declares the category. Earlier-chosen vendors win: consolidation is sticky
// on purpose, optimizing for fewest stops rather than smallest detour.
func firstServingEntry(plan *domain.AssignmentPlan, category string) *domain.VendorPlanEntry {
	for _, entry := range plan.Entries() {
		if entry.Vendor.ServesCategory(category) {
			return entry
		}
	}
	return nil
}

// firstMatchingCandidate scans candidates in ascending-detour order,
// preferring vendors not yet in the plan; when every matching vendor is
// already used, the closest matching one is reused.
func firstMatchingCandidate(
	candidates []domain.CandidateVendor,
	plan *domain.AssignmentPlan,
	category string,
) (domain.CandidateVendor, bool) {
	for _, v := range candidates {
		if _, used := plan.Entry(v.ID); used {
			continue
		}
		if v.ServesCategory(category) {
			return v, true
		}
	}
	for _, v := range candidates {
		if v.ServesCategory(category) {
			return v, true
		}
	}
	return domain.CandidateVendor{}, false
}

func syntheticVendor(category, id string) domain.CandidateVendor {
	storeType := domain.StoreType(category)
	if !domain.KnownStoreType(storeType) {
		storeType = domain.StoreGrocery
	}

	return domain.CandidateVendor{
		ShopRecord: domain.ShopRecord{
			ID:         id,
			Name:       "On-Route " + titleCategory(category) + " Supplier",
			Type:       storeType,
			Active:     true,
			Categories: []string{category},
		},
		DistanceFromRouteKm:  syntheticDetourKm,
		DetourKm:             syntheticDetourKm,
		EstimatedTimeMinutes: 1,
		IsOnRoute:            true,
		Synthetic:            true,
	}
}

func titleCategory(category string) string {
	if category == "" {
		return category
	}
	runes := []rune(strings.ToLower(category))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
