package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name    string
		product string
		size    string
		pcs     int
		want    int
		wantErr bool
	}{
		{name: "pine desire 6ml x2", product: "Pine Desire", size: "6ml", pcs: 2, want: 998},
		{name: "dubai mafia 12ml x1", product: "Dubai Mafia", size: "12ml", pcs: 1, want: 1199},
		{name: "coco crave 3ml x5", product: "Coco Crave", size: "3ml", pcs: 5, want: 1495},
		{name: "unknown product", product: "Oud Royale", size: "6ml", pcs: 1, wantErr: true},
		{name: "unknown size", product: "Pine Desire", size: "5ml", pcs: 1, wantErr: true},
		{name: "zero pcs", product: "Pine Desire", size: "6ml", pcs: 0, wantErr: true},
		{name: "negative pcs", product: "Pine Desire", size: "6ml", pcs: -3, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Amount(tt.product, tt.size, tt.pcs)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// replaying the same inputs yields the same amount
			again, err := Amount(tt.product, tt.size, tt.pcs)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestSizesCoverEveryProduct(t *testing.T) {
	for _, p := range Products() {
		szs, ok := Sizes(p)
		require.True(t, ok, p)
		require.NotEmpty(t, szs)
		for _, s := range szs {
			price, ok := Price(p, s)
			assert.True(t, ok, "%s/%s", p, s)
			assert.Greater(t, price, 0)
		}
	}
}

func TestSizesUnknownProduct(t *testing.T) {
	_, ok := Sizes("Oud Royale")
	assert.False(t, ok)
}
