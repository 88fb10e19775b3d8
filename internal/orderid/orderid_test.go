package orderid

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^ATR \d{6} [ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{6}$`)

func TestGenerateFormat(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 1000; i++ {
		id := Generate(now)
		require.Regexp(t, idPattern, id)
		assert.True(t, strings.HasPrefix(id, "ATR 260831 "))
	}
}

func TestGenerateExcludesConfusables(t *testing.T) {
	now := time.Now()
	for i := 0; i < 5000; i++ {
		code := Generate(now)[11:]
		for _, r := range code {
			assert.Contains(t, alphabet, string(r))
		}
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}

// Birthday bound over the 32^6 space: with 1e6 draws some collisions are
// expected (about 465 on average), so the test tolerates a generous margin
// instead of asserting a flaky hard zero.
func TestGenerateUniqueness(t *testing.T) {
	n := 1_000_000
	if testing.Short() {
		n = 100_000
	}
	now := time.Now()
	seen := make(map[string]struct{}, n)
	collisions := 0
	for i := 0; i < n; i++ {
		id := Generate(now)
		if _, dup := seen[id]; dup {
			collisions++
		}
		seen[id] = struct{}{}
	}
	// E[collisions] ≈ n^2 / (2 * 32^6) ≈ 465 for n=1e6; anything far above
	// that indicates a broken sampler.
	assert.Less(t, collisions, 2000)
}

func TestGenerateUniqueRetriesOnCollision(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, id string) (bool, error) {
		calls++
		return calls <= 2, nil // first two ids "taken"
	}
	id, err := GenerateUnique(context.Background(), time.Now(), exists)
	require.NoError(t, err)
	assert.Regexp(t, idPattern, id)
	assert.Equal(t, 3, calls)
}

func TestGenerateUniqueSurfacesStoreError(t *testing.T) {
	boom := errors.New("store down")
	_, err := GenerateUnique(context.Background(), time.Now(), func(ctx context.Context, id string) (bool, error) {
		return false, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestGenerateUniqueGivesUp(t *testing.T) {
	_, err := GenerateUnique(context.Background(), time.Now(), func(ctx context.Context, id string) (bool, error) {
		return true, nil
	})
	require.Error(t, err)
}
