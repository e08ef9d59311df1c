package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestReduce tests the behavior of Reduce.
//
// It verifies:
//   - Succeeded and failed sets are disjoint and cover every attempted name
//   - A failed batch contributes every one of its names to the failed set
//   - Attempted equals the sum of item sizes
func TestReduce(t *testing.T) {
	t.Run("mixed outcomes", func(t *testing.T) {
		results := []ItemResult{
			{Item: Item{"wget", "curl"}, OK: false},
			{Item: Item{"firefox"}, OK: true},
			{Item: Item{"jq"}, Err: errors.New("launch failed")},
		}

		agg := Reduce(results)
		assert.Equal(t, 4, agg.Attempted)
		assert.ElementsMatch(t, []string{"firefox"}, agg.Succeeded)
		assert.ElementsMatch(t, []string{"wget", "curl", "jq"}, agg.Failed)
		assert.True(t, agg.HasFailures())

		for _, name := range agg.Succeeded {
			assert.NotContains(t, agg.Failed, name)
		}
	})

	t.Run("all succeeded", func(t *testing.T) {
		agg := Reduce([]ItemResult{
			{Item: Item{"wget"}, OK: true},
			{Item: Item{"curl"}, OK: true},
		})
		assert.Equal(t, 2, agg.Attempted)
		assert.Empty(t, agg.Failed)
		assert.False(t, agg.HasFailures())
	})

	t.Run("no items", func(t *testing.T) {
		agg := Reduce(nil)
		assert.Equal(t, 0, agg.Attempted)
		assert.Empty(t, agg.Succeeded)
		assert.Empty(t, agg.Failed)
	})
}

// TestFailedNames tests the behavior of ItemResult.FailedNames.
//
// It verifies:
//   - A failed batch reports the whole batch, never a subset
//   - A succeeded item reports nothing
func TestFailedNames(t *testing.T) {
	failed := ItemResult{Item: Item{"wget", "curl"}}
	assert.Equal(t, []string{"wget", "curl"}, failed.FailedNames())

	ok := ItemResult{Item: Item{"firefox"}, OK: true}
	assert.Nil(t, ok.FailedNames())
}
