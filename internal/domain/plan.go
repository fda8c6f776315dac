package domain

// PlanItem is one line of a vendor's share of the shopping list.
type PlanItem struct {
	ItemID   string
	Name     string
	Quantity int
	Price    float64
}

// VendorPlanEntry groups everything assigned to a single vendor in one
// planning run, with a running subtotal. At most one entry exists per vendor.
type VendorPlanEntry struct {
	Vendor   CandidateVendor
	Items    []PlanItem
	Subtotal float64
}

// Append adds an item line and accumulates the subtotal. Non-positive
// quantities are never placed, regardless of what the caller passed in.
func (e *VendorPlanEntry) Append(item PlanItem) {
	if item.Quantity <= 0 {
		return
	}
	e.Items = append(e.Items, item)
	e.Subtotal += item.Price * float64(item.Quantity)
}

// ItemCount returns the total quantity across all lines of the entry.
func (e *VendorPlanEntry) ItemCount() int {
	n := 0
	for _, it := range e.Items {
		n += it.Quantity
	}
	return n
}

// AssignmentPlan maps vendors to their assigned items. Entries keep creation
// order: consolidation scans earlier-created entries first, so the order is
// part of the algorithm, not a presentation detail.
//
// A plan is scoped to one planning invocation and must not be shared between
// concurrent requests.
type AssignmentPlan struct {
	entries []*VendorPlanEntry
	index   map[string]int
}

func NewAssignmentPlan() *AssignmentPlan {
	return &AssignmentPlan{index: make(map[string]int)}
}

// Entry returns the plan entry for a vendor, if one was created this run.
func (p *AssignmentPlan) Entry(vendorID string) (*VendorPlanEntry, bool) {
	i, ok := p.index[vendorID]
	if !ok {
		return nil, false
	}
	return p.entries[i], true
}

// EnsureEntry returns the vendor's entry, creating it on first use.
func (p *AssignmentPlan) EnsureEntry(vendor CandidateVendor) *VendorPlanEntry {
	if e, ok := p.Entry(vendor.ID); ok {
		return e
	}
	e := &VendorPlanEntry{Vendor: vendor}
	p.index[vendor.ID] = len(p.entries)
	p.entries = append(p.entries, e)
	return e
}

// Entries returns plan entries in creation order.
func (p *AssignmentPlan) Entries() []*VendorPlanEntry { return p.entries }

func (p *AssignmentPlan) Len() int { return len(p.entries) }

// TotalSubtotal sums the subtotals of every entry.
func (p *AssignmentPlan) TotalSubtotal() float64 {
	total := 0.0
	for _, e := range p.entries {
		total += e.Subtotal
	}
	return total
}

// AssignedQuantity returns the total quantity of an item placed across all
// entries.
func (p *AssignmentPlan) AssignedQuantity(itemID string) int {
	n := 0
	for _, e := range p.entries {
		for _, it := range e.Items {
			if it.ItemID == itemID {
				n += it.Quantity
			}
		}
	}
	return n
}
