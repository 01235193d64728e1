package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
)

func ptr(s string) *string { return &s }

// fakeLevelStore отдаёт уровни из памяти и считает обращения.
type fakeLevelStore struct {
	levels map[string]entities.ObjectLevel
	calls  int
}

func (f *fakeLevelStore) fetch(_ context.Context, ids []string) ([]entities.ObjectLevel, error) {
	f.calls++
	result := make([]entities.ObjectLevel, 0, len(ids))
	for _, id := range ids {
		if level, ok := f.levels[id]; ok {
			result = append(result, level)
		}
	}
	return result, nil
}

func chainLevel(id string, parentID *string) entities.ObjectLevel {
	return entities.ObjectLevel{
		ID:        id,
		ObjectID:  "obj-1",
		LevelType: "section",
		ParentID:  parentID,
	}
}

func TestLoadLevelsTree_ChainLoadsAllAncestors(t *testing.T) {
	store := &fakeLevelStore{levels: map[string]entities.ObjectLevel{
		"leaf": chainLevel("leaf", ptr("mid")),
		"mid":  chainLevel("mid", ptr("root")),
		"root": chainLevel("root", nil),
	}}

	tree, err := loadLevelsTree(context.Background(), []string{"leaf"}, store.fetch)
	require.NoError(t, err)

	assert.Len(t, tree, 3)
	assert.Contains(t, tree, "leaf")
	assert.Contains(t, tree, "mid")
	assert.Contains(t, tree, "root")
	// Одна выборка на поколение цепочки, а не на узел.
	assert.LessOrEqual(t, store.calls, 3)
}

func TestLoadLevelsTree_BatchesSharedAncestors(t *testing.T) {
	store := &fakeLevelStore{levels: map[string]entities.ObjectLevel{
		"a":    chainLevel("a", ptr("root")),
		"b":    chainLevel("b", ptr("root")),
		"root": chainLevel("root", nil),
	}}

	tree, err := loadLevelsTree(context.Background(), []string{"a", "b"}, store.fetch)
	require.NoError(t, err)

	assert.Len(t, tree, 3)
	assert.Equal(t, 2, store.calls)
}

func TestLoadLevelsTree_CycleTerminates(t *testing.T) {
	store := &fakeLevelStore{levels: map[string]entities.ObjectLevel{
		"a": chainLevel("a", ptr("b")),
		"b": chainLevel("b", ptr("a")),
	}}

	tree, err := loadLevelsTree(context.Background(), []string{"a"}, store.fetch)
	require.NoError(t, err)

	assert.Len(t, tree, 2)
	assert.Contains(t, tree, "a")
	assert.Contains(t, tree, "b")
}

func TestLoadLevelsTree_DanglingParentIgnored(t *testing.T) {
	store := &fakeLevelStore{levels: map[string]entities.ObjectLevel{
		"leaf": chainLevel("leaf", ptr("missing")),
	}}

	tree, err := loadLevelsTree(context.Background(), []string{"leaf"}, store.fetch)
	require.NoError(t, err)

	assert.Len(t, tree, 1)
	assert.NotContains(t, tree, "missing")
}

func TestLoadLevelsTree_EmptyInput(t *testing.T) {
	store := &fakeLevelStore{levels: map[string]entities.ObjectLevel{}}

	tree, err := loadLevelsTree(context.Background(), nil, store.fetch)
	require.NoError(t, err)

	assert.Empty(t, tree)
	assert.Zero(t, store.calls)
}
