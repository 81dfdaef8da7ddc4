package partition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPartition(t *testing.T) {
	data, err := readPartition(strings.NewReader(`  {"items":[{"id":"i1"}],"goals":null}`))
	require.NoError(t, err)
	assert.Len(t, data.Items, 1)
	assert.NotNil(t, data.Goals)
	assert.Empty(t, data.Goals)

	for _, in := range []string{``, `[]`, `"x"`, `{"items":"x"}`} {
		_, err := readPartition(strings.NewReader(in))
		assert.Error(t, err, in)
	}
}
