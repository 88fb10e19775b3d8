package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullSchema = []string{
	"order_id", "customer_id", "customer_name", "mobile", "address",
	"product", "size", "pcs", "amount", "status",
	"courier", "tracking_id", "tracking_url", "created_at", "updated_at",
}

func TestNewColumnPlanCanonicalOrder(t *testing.T) {
	plan, err := newColumnPlan(fullSchema)
	require.NoError(t, err)
	assert.Equal(t, fullSchema, plan.cols)
}

func TestNewColumnPlanToleratesReorderAndExtras(t *testing.T) {
	shuffled := []string{
		"status", "id", "order_id", "amount", "customer_id", "pcs",
		"internal_notes", "customer_name", "size", "product", "mobile",
		"address", "updated_at", "tracking_url", "courier", "tracking_id",
		"created_at", "sync_flag",
	}
	plan, err := newColumnPlan(shuffled)
	require.NoError(t, err)

	// unknown columns dropped, table order preserved
	assert.Equal(t, []string{
		"status", "order_id", "amount", "customer_id", "pcs",
		"customer_name", "size", "product", "mobile", "address",
		"updated_at", "tracking_url", "courier", "tracking_id", "created_at",
	}, plan.cols)
	assert.True(t, plan.has["courier"])
	assert.False(t, plan.has["internal_notes"])
}

func TestNewColumnPlanTrimsAndLowercases(t *testing.T) {
	messy := make([]string, len(fullSchema))
	copy(messy, fullSchema)
	messy[0] = "  Order_ID "
	messy[9] = "STATUS"

	plan, err := newColumnPlan(messy)
	require.NoError(t, err)
	assert.Equal(t, "order_id", plan.cols[0])
	assert.Equal(t, "status", plan.cols[9])
}

func TestNewColumnPlanMissingColumn(t *testing.T) {
	var withoutStatus []string
	for _, c := range fullSchema {
		if c != "status" {
			withoutStatus = append(withoutStatus, c)
		}
	}
	_, err := newColumnPlan(withoutStatus)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

func TestNewColumnPlanDuplicateColumn(t *testing.T) {
	dup := append([]string{}, fullSchema...)
	dup = append(dup, "Order_Id")
	_, err := newColumnPlan(dup)
	require.Error(t, err)
}

func TestInsertPlaceholders(t *testing.T) {
	plan, err := newColumnPlan(fullSchema)
	require.NoError(t, err)
	assert.Equal(t, "?,?,?,?,?,?,?,?,?,?,?,?,?,?,?", plan.insertPlaceholders())
}
