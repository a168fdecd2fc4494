package site

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/planning-cli/internal/model"
)

func TestTableAppend_DuplicateRejected(t *testing.T) {
	t.Parallel()

	table := NewTable()

	assert.True(t, table.Append(model.SiteRecord{LotID: "37/G/DP8324", Zoning: "R2"}))
	// Second submission of the same lot is a no-op; first wins.
	assert.False(t, table.Append(model.SiteRecord{LotID: "37/G/DP8324", Zoning: "B1"}))

	require.Equal(t, 1, table.Len())
	assert.Equal(t, "R2", table.Records()[0].Zoning)
}

func TestTableContains(t *testing.T) {
	t.Parallel()

	table := NewTable()
	assert.False(t, table.Contains("37/G/DP8324"))

	table.Append(model.SiteRecord{LotID: "37/G/DP8324"})
	assert.True(t, table.Contains("37/G/DP8324"))
}

func TestTableRecords_InsertionOrderAndCopy(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Append(model.SiteRecord{LotID: "1/A/DP1"})
	table.Append(model.SiteRecord{LotID: "2/B/DP2"})

	records := table.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "1/A/DP1", records[0].LotID)
	assert.Equal(t, "2/B/DP2", records[1].LotID)

	// Mutating the returned slice must not affect the table.
	records[0].LotID = "mutated"
	assert.Equal(t, "1/A/DP1", table.Records()[0].LotID)
}

func TestTableClear(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Append(model.SiteRecord{LotID: "1/A/DP1"})
	table.Clear()

	assert.Zero(t, table.Len())
	assert.False(t, table.Contains("1/A/DP1"))
	// The identifier is free again after a clear.
	assert.True(t, table.Append(model.SiteRecord{LotID: "1/A/DP1"}))
}

func TestTableAppend_Concurrent(t *testing.T) {
	t.Parallel()

	table := NewTable()
	const workers = 32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Half the workers race on the same lot id.
			table.Append(model.SiteRecord{LotID: fmt.Sprintf("%d/A/DP%d", i%16, i%16)})
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, table.Len())
}
