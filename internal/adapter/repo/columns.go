package repo

import (
	"fmt"
	"strings"
)

// Canonical field names of the orders table. The live table may carry
// extra columns and any column order; writers bind by name, discovered at
// startup, so the back office can reshape the sheet-backed table without a
// deploy. Matching is case-insensitive and whitespace-trimmed.
const (
	colOrderID     = "order_id"
	colCustomerID  = "customer_id"
	colName        = "customer_name"
	colMobile      = "mobile"
	colAddress     = "address"
	colProduct     = "product"
	colSize        = "size"
	colPcs         = "pcs"
	colAmount      = "amount"
	colStatus      = "status"
	colCourier     = "courier"
	colTrackingID  = "tracking_id"
	colTrackingURL = "tracking_url"
	colCreatedAt   = "created_at"
	colUpdatedAt   = "updated_at"
)

var canonicalColumns = []string{
	colOrderID, colCustomerID, colName, colMobile, colAddress,
	colProduct, colSize, colPcs, colAmount, colStatus,
	colCourier, colTrackingID, colTrackingURL, colCreatedAt, colUpdatedAt,
}

// columnPlan is the result of matching the live table against the
// canonical set: the canonical columns in the table's own order.
type columnPlan struct {
	cols []string
	has  map[string]bool
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// newColumnPlan matches discovered table columns against the canonical
// set. Unknown columns are ignored (they must be nullable or defaulted on
// the table side); a missing canonical column is a startup error.
func newColumnPlan(tableColumns []string) (columnPlan, error) {
	canonical := make(map[string]bool, len(canonicalColumns))
	for _, c := range canonicalColumns {
		canonical[c] = true
	}

	plan := columnPlan{has: make(map[string]bool, len(canonicalColumns))}
	for _, raw := range tableColumns {
		name := normalizeColumn(raw)
		if !canonical[name] {
			continue
		}
		if plan.has[name] {
			return columnPlan{}, fmt.Errorf("repo: duplicate column %q", name)
		}
		plan.has[name] = true
		plan.cols = append(plan.cols, name)
	}

	for _, c := range canonicalColumns {
		if !plan.has[c] {
			return columnPlan{}, fmt.Errorf("repo: orders table is missing column %q", c)
		}
	}
	return plan, nil
}

func (p columnPlan) selectList() string {
	return strings.Join(p.cols, ", ")
}

func (p columnPlan) insertPlaceholders() string {
	return strings.TrimSuffix(strings.Repeat("?,", len(p.cols)), ",")
}
