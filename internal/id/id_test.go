package id

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		v := New(PrefixList)
		assert.True(t, strings.HasPrefix(v, "list_"), v)

		_, dup := seen[v]
		assert.False(t, dup, "duplicate id %s", v)
		seen[v] = struct{}{}
	}
}

func TestNew_PanicsAfterFailedInit(t *testing.T) {
	reset := func() {
		node = nil
		once = sync.Once{}
	}
	reset()
	t.Cleanup(reset)

	require.Error(t, Init(-1))
	assert.PanicsWithValue(t, "id: snowflake node not initialised, Init failed", func() {
		New(PrefixUser)
	})
}
