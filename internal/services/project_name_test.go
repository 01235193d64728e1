package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
)

func nameMapsFixture() ProjectNameMaps {
	return ProjectNameMaps{
		Levels: map[string]entities.ObjectLevel{
			"wt1": {
				ID: "wt1", ObjectID: "obj1", LevelType: "worktype",
				WorkType: strPtr("wtr1"), ParentID: strPtr("ag1"),
			},
			"ag1": {
				ID: "ag1", ObjectID: "obj1", LevelType: "agreement",
				ContractID: strPtr("c1"), ParentID: strPtr("sec1"),
			},
			"sec1": {
				ID: "sec1", ObjectID: "obj1", LevelType: "section",
				Name: strPtr("Block 1"), ParentID: strPtr("root1"),
			},
			"root1": {
				ID: "root1", ObjectID: "obj1", LevelType: "object",
			},
		},
		Objects: map[string]entities.RefObject{
			"obj1": {ID: "obj1", ShortName: strPtr("Tower A"), FullName: strPtr("Tower A, construction site")},
		},
		Contracts: map[string]entities.ContractRef{
			"c1": {ID: "c1", Name: "Contract X"},
		},
		WorkTypes: map[string]entities.WorkTypeRef{
			"wtr1": {ID: "wtr1", Name: strPtr("Excavation")},
		},
	}
}

func TestBuildProjectName_FullChain(t *testing.T) {
	name := BuildProjectName("wt1", nameMapsFixture())
	require.NotNil(t, name)
	assert.Equal(t, "Tower A - Block 1 - Contract X - Excavation", *name)
}

func TestBuildProjectName_NearestSectionWins(t *testing.T) {
	maps := nameMapsFixture()
	maps.Levels["sec0"] = entities.ObjectLevel{
		ID: "sec0", ObjectID: "obj1", LevelType: "section",
		Name: strPtr("Block 0"), ParentID: strPtr("sec1"),
	}
	maps.Levels["wt2"] = entities.ObjectLevel{
		ID: "wt2", ObjectID: "obj1", LevelType: "worktype",
		WorkType: strPtr("wtr1"), ParentID: strPtr("sec0"),
	}

	name := BuildProjectName("wt2", maps)
	require.NotNil(t, name)
	// Ближняя к цели секция побеждает дальнюю.
	assert.Equal(t, "Tower A - Block 0 - Excavation", *name)
}

func TestBuildProjectName_AgreementFallsBackToNodeName(t *testing.T) {
	maps := nameMapsFixture()
	level := maps.Levels["ag1"]
	level.ContractID = strPtr("missing")
	level.Name = strPtr("Agreement 7")
	maps.Levels["ag1"] = level

	name := BuildProjectName("wt1", maps)
	require.NotNil(t, name)
	assert.Equal(t, "Tower A - Block 1 - Agreement 7 - Excavation", *name)
}

func TestBuildProjectName_ObjectFullNameFallback(t *testing.T) {
	maps := nameMapsFixture()
	maps.Objects["obj1"] = entities.RefObject{ID: "obj1", FullName: strPtr("Tower A, construction site")}

	name := BuildProjectName("sec1", maps)
	require.NotNil(t, name)
	assert.Equal(t, "Tower A, construction site - Block 1", *name)
}

func TestBuildProjectName_ObjectOfTargetNode(t *testing.T) {
	maps := nameMapsFixture()
	// Целевой узел привязан к другому объекту, чем его предки: имя
	// объекта берётся по object_id самого целевого узла.
	maps.Levels["wt3"] = entities.ObjectLevel{
		ID: "wt3", ObjectID: "obj3", LevelType: "worktype",
		WorkType: strPtr("wtr1"), ParentID: strPtr("sec1"),
	}
	maps.Objects["obj3"] = entities.RefObject{ID: "obj3", ShortName: strPtr("Tower B")}

	name := BuildProjectName("wt3", maps)
	require.NotNil(t, name)
	assert.Equal(t, "Tower B - Block 1 - Excavation", *name)
}

func TestBuildProjectName_UnknownLevel(t *testing.T) {
	assert.Nil(t, BuildProjectName("ghost", nameMapsFixture()))
}

func TestBuildProjectName_AllEmpty(t *testing.T) {
	maps := ProjectNameMaps{
		Levels: map[string]entities.ObjectLevel{
			"lonely": {ID: "lonely", ObjectID: "obj9", LevelType: "section"},
		},
		Objects:   map[string]entities.RefObject{},
		Contracts: map[string]entities.ContractRef{},
		WorkTypes: map[string]entities.WorkTypeRef{},
	}
	assert.Nil(t, BuildProjectName("lonely", maps))
}

func TestLoadProjectReferenceMaps_OneBatchPerKind(t *testing.T) {
	maps := nameMapsFixture()
	refRepo := &fakeReferenceRepo{
		levels:    maps.Levels,
		objects:   maps.Objects,
		contracts: maps.Contracts,
		workTypes: maps.WorkTypes,
	}

	loaded, err := LoadProjectReferenceMaps(context.Background(), refRepo, []string{"wt1"})
	require.NoError(t, err)

	assert.Len(t, loaded.Levels, 4)
	assert.Equal(t, 1, refRepo.objectsCalls)
	assert.Equal(t, 1, refRepo.contractsCalls)
	assert.Equal(t, 1, refRepo.workTypesCalls)
}
