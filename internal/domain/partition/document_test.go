package partition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKind  Kind
		wantUsers []string
		wantErr   bool
	}{
		{
			name:      "empty body",
			input:     "",
			wantKind:  KindPartitioned,
			wantUsers: []string{},
		},
		{
			name:      "null",
			input:     "null",
			wantKind:  KindPartitioned,
			wantUsers: []string{},
		},
		{
			name:      "empty object",
			input:     "{}",
			wantKind:  KindPartitioned,
			wantUsers: []string{},
		},
		{
			name:      "partitioned keeps key order",
			input:     `{"users":{"zoe":{"items":[]},"adam":{"items":[]},"mia":{}}}`,
			wantKind:  KindPartitioned,
			wantUsers: []string{"zoe", "adam", "mia"},
		},
		{
			name:     "legacy with empty arrays",
			input:    `{"items":[],"groups":[],"costs":[],"goals":[]}`,
			wantKind: KindLegacy,
		},
		{
			name:     "legacy with only goals",
			input:    `{"goals":[{"id":1}]}`,
			wantKind: KindLegacy,
		},
		{
			name:     "null users falls back to legacy detection",
			input:    `{"users":null,"items":[1]}`,
			wantKind: KindLegacy,
		},
		{
			name:      "unknown keys only",
			input:     `{"settings":{"theme":"dark"}}`,
			wantKind:  KindPartitioned,
			wantUsers: []string{},
		},
		{
			name:    "array is malformed",
			input:   `[1,2,3]`,
			wantErr: true,
		},
		{
			name:    "users must be an object",
			input:   `{"users":[1]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedDocument)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, doc.Kind)
			if tt.wantKind == KindPartitioned {
				assert.Equal(t, tt.wantUsers, append([]string{}, doc.Usernames()...))
			}
		})
	}
}

func TestDocument_Partition(t *testing.T) {
	doc, err := Decode([]byte(`{"users":{"nilda":{"items":[{"id":"i1"}],"lastUpdate":"2024-05-01T10:00:00Z"},"broken":"oops"}}`))
	require.NoError(t, err)

	p, ok, err := doc.Partition("nilda")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, p.Items, 1)
	assert.NotNil(t, p.Groups)
	assert.Empty(t, p.Groups)
	assert.NotNil(t, p.ServiceAppointments)
	assert.Equal(t, 2024, p.LastUpdate.Year())

	_, ok, err = doc.Partition("ghost")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = doc.Partition("broken")
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrMalformedPartition)
}

func TestDocument_SetPartitionKeepsOtherUsersBytes(t *testing.T) {
	input := `{"users":{"a":{"items":[{"id":1,"name":"Ring"}],"extra":"kept"},"b":{"items":[]}}}`
	doc, err := Decode([]byte(input))
	require.NoError(t, err)

	before, _ := doc.Raw("a")

	p := Empty()
	p.Items = []json.RawMessage{json.RawMessage(`{"id":2}`)}
	require.NoError(t, doc.SetPartition("b", p))
	require.NoError(t, doc.SetPartition("c", Empty()))

	out, err := json.Marshal(doc)
	require.NoError(t, err)

	again, err := Decode(out)
	require.NoError(t, err)
	after, _ := again.Raw("a")
	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, []string{"a", "b", "c"}, again.Usernames())

	b, _, err := again.Partition("b")
	require.NoError(t, err)
	assert.Len(t, b.Items, 1)
}

func TestDocument_SetPartitionOnLegacy(t *testing.T) {
	doc, err := Decode([]byte(`{"items":[]}`))
	require.NoError(t, err)

	err = doc.SetPartition("nilda", Empty())
	assert.ErrorIs(t, err, ErrLegacyDocument)
}

func TestDocument_MarshalEmpty(t *testing.T) {
	out, err := json.Marshal(NewDocument())
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":{}}`, string(out))
}

func TestEmpty(t *testing.T) {
	p := Empty()

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"groups":[],"serviceGroups":[],"costs":[],"goals":[],
		"completedSales":[],"pendingOrders":[],"serviceAppointments":[]}`, string(out))
}

func TestDecodePartition_NullCollections(t *testing.T) {
	p, err := DecodePartition([]byte(`{"items":null,"costs":[{"v":1}]}`))
	require.NoError(t, err)

	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Len(t, p.Costs, 1)
	assert.Equal(t, Counts{Costs: 1}, p.Counts())
}
