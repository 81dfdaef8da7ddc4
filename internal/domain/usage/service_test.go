package usage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"retailsync/internal/domain/partition"
)

type stubFetcher struct {
	doc *partition.Document
	err error
}

func (f stubFetcher) FetchLatest(context.Context) (*partition.Document, error) {
	return f.doc, f.err
}

func decode(t *testing.T, data string) *partition.Document {
	t.Helper()
	doc, err := partition.Decode([]byte(data))
	require.NoError(t, err)
	return doc
}

func TestReporter_SortsByLastUpdate(t *testing.T) {
	doc := decode(t, `{"users":{
		"old":{"items":[1,2,3,4,5,6,7,8,9,10],"lastUpdate":"2024-01-01T00:00:00Z"},
		"undated":{"items":[1]},
		"new":{"items":[1],"lastUpdate":"2024-06-01T00:00:00Z"},
		"undated2":{"items":[]}
	}}`)

	report := NewReporter(0).Report(doc)

	require.Len(t, report.PerUserUsage, 4)
	names := make([]string, 0, 4)
	for _, u := range report.PerUserUsage {
		names = append(names, u.Username)
	}
	// Большой раздел "old" не поднимается вверх: порядок по дате, а не по размеру
	assert.Equal(t, []string{"new", "old", "undated", "undated2"}, names)
	assert.Greater(t, report.PerUserUsage[1].Size, report.PerUserUsage[0].Size)
	assert.Nil(t, report.PerUserUsage[2].LastUpdate)
}

func TestReporter_Totals(t *testing.T) {
	doc := decode(t, `{"users":{
		"alice":{"items":[{"id":1},{"id":2}],"costs":[{"id":3}]},
		"bob":{"items":[{"id":4}]}
	}}`)

	report := NewReporter(1000).Report(doc)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.Equal(t, len(data), report.TotalUsage.Size)
	assert.Equal(t, 1000, report.TotalUsage.Limit)
	assert.Equal(t, 2, report.TotalUsage.Users)
	assert.Equal(t, 3, report.TotalUsage.Items)
	assert.False(t, report.TotalUsage.NearLimit)
	assert.InDelta(t, float64(len(data))/10, report.TotalUsage.Percentage, 0.01)

	for _, u := range report.PerUserUsage {
		raw, ok := doc.Raw(u.Username)
		require.True(t, ok)
		assert.Equal(t, len(raw), u.Size)
	}
}

func TestReporter_NearLimit(t *testing.T) {
	doc := decode(t, `{"users":{"alice":{"items":["xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"]}}}`)

	report := NewReporter(60).Report(doc)

	assert.True(t, report.TotalUsage.NearLimit)
	assert.Greater(t, report.TotalUsage.Percentage, 80.0)
}

func TestReporter_MalformedPartition(t *testing.T) {
	doc := decode(t, `{"users":{"alice":{"items":[1]},"bob":"oops"}}`)

	report := NewReporter(0).Report(doc)

	require.Len(t, report.PerUserUsage, 2)

	var bob UserUsage
	for _, u := range report.PerUserUsage {
		if u.Username == "bob" {
			bob = u
		}
	}
	assert.Zero(t, bob.Size)
	assert.NotEmpty(t, bob.Error)
	assert.Equal(t, 1, report.TotalUsage.Users)
	assert.Equal(t, 1, report.TotalUsage.Items)
	assert.Equal(t, len(`{"users":{"alice":{"items":[1]}}}`), report.TotalUsage.Size)
}

func TestReporter_MalformedPartitionsExcludedFromSize(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "first of three",
			doc:  `{"users":{"bad":"oops","a":{"items":[1]},"b":{}}}`,
			want: `{"users":{"a":{"items":[1]},"b":{}}}`,
		},
		{
			name: "last",
			doc:  `{"users":{"a":{"items":[1]},"bad":[1, 2]}}`,
			want: `{"users":{"a":{"items":[1]}}}`,
		},
		{
			name: "all",
			doc:  `{"users":{"x":"oops","y":5}}`,
			want: `{"users":{}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewReporter(0).Report(decode(t, tt.doc))
			assert.Equal(t, len(tt.want), report.TotalUsage.Size)
		})
	}
}

func TestReporter_MalformedLegacy(t *testing.T) {
	report := NewReporter(0).Report(decode(t, `{"items":"not a list"}`))

	require.Len(t, report.PerUserUsage, 1)
	assert.NotEmpty(t, report.PerUserUsage[0].Error)
	assert.Zero(t, report.TotalUsage.Size)
	assert.Zero(t, report.TotalUsage.Users)
}

func TestReporter_Legacy(t *testing.T) {
	doc := decode(t, `{"items":[1,2],"groups":[],"lastUpdate":"2023-05-01T00:00:00Z"}`)

	report := NewReporter(0).Report(doc)

	require.Len(t, report.PerUserUsage, 1)
	u := report.PerUserUsage[0]
	assert.True(t, u.Legacy)
	assert.Equal(t, LegacyUsername, u.Username)
	assert.Equal(t, 2, u.Counts.Items)
	require.NotNil(t, u.LastUpdate)
	assert.Equal(t, 1, report.TotalUsage.Users)
	assert.Equal(t, doc.Kind, partition.KindLegacy)
}

func TestReporter_EmptyDocument(t *testing.T) {
	report := NewReporter(0).Report(partition.NewDocument())

	assert.Empty(t, report.PerUserUsage)
	assert.Equal(t, DefaultCapacity, report.TotalUsage.Limit)
	assert.Zero(t, report.TotalUsage.Users)

	nilReport := NewReporter(0).Report(nil)
	assert.Zero(t, nilReport.TotalUsage.Size)
}

func TestReporter_DoesNotModifyDocument(t *testing.T) {
	doc := decode(t, `{"users":{"alice":{"items":[1]},"bob":{"goals":[2]}}}`)
	before, err := json.Marshal(doc)
	require.NoError(t, err)

	NewReporter(0).Report(doc)

	after, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestService_Report(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("remote available", func(t *testing.T) {
		doc := decode(t, `{"users":{"alice":{"items":[1]}}}`)
		svc := NewService(stubFetcher{doc: doc}, NewReporter(0), log)

		report, err := svc.Report(context.Background())
		require.NoError(t, err)
		assert.True(t, report.RemoteAvailable)
		assert.Len(t, report.PerUserUsage, 1)
	})

	t.Run("remote unavailable", func(t *testing.T) {
		svc := NewService(stubFetcher{err: errors.New("connection refused")}, NewReporter(500), log)

		report, err := svc.Report(context.Background())
		require.NoError(t, err)
		assert.False(t, report.RemoteAvailable)
		assert.Zero(t, report.TotalUsage.Size)
		assert.Equal(t, 500, report.TotalUsage.Limit)
		assert.Empty(t, report.PerUserUsage)
	})
}
