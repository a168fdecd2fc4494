package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/planning-cli/internal/model"
)

func TestSessions(t *testing.T) {
	t.Parallel()

	sessions := NewSessions()

	id, table := sessions.New()
	require.NotEmpty(t, id)
	require.NotNil(t, table)
	assert.Same(t, table, sessions.Get(id))

	// Sessions are isolated from each other.
	id2, table2 := sessions.New()
	assert.NotEqual(t, id, id2)
	table.Append(model.SiteRecord{LotID: "1/A/DP1"})
	assert.Zero(t, table2.Len())

	assert.Nil(t, sessions.Get("no-such-session"))
}

func TestSessionsReset(t *testing.T) {
	t.Parallel()

	sessions := NewSessions()
	id, _ := sessions.New()

	assert.True(t, sessions.Reset(id))
	assert.Nil(t, sessions.Get(id))
	assert.False(t, sessions.Reset(id))
}
