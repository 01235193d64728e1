package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/pkg/constants"
)

func visibilityFixture() (*fakeReferenceRepo, *fakeRoleRepo, *fakeProjectRepo) {
	maps := nameMapsFixture()
	// Второй объект без активного проекта.
	maps.Levels["wt9"] = entities.ObjectLevel{
		ID: "wt9", ObjectID: "obj2", LevelType: "worktype", WorkType: strPtr("wtr1"),
	}
	maps.Objects["obj2"] = entities.RefObject{ID: "obj2", ShortName: strPtr("Tower B")}

	refRepo := &fakeReferenceRepo{
		levels:    maps.Levels,
		objects:   maps.Objects,
		contracts: maps.Contracts,
		workTypes: maps.WorkTypes,
		byType: map[string][]string{
			constants.LevelTypeWorkType: {"wt1", "wt9"},
		},
	}
	roleRepo := &fakeRoleRepo{grants: []entities.ProjectUserRole{
		{ID: "g1", ObjectLevelsID: "wt1", UserID: "u1", Role: constants.RoleRequester},
		{ID: "g2", ObjectLevelsID: "wt9", UserID: "u1", Role: constants.RoleRequester},
		{ID: "g3", ObjectLevelsID: "wt1", UserID: "u1", Role: constants.RoleRequester}, // дубликат
		{ID: "g4", ObjectLevelsID: "wt1", UserID: "u1", Role: constants.RoleSupplyManager},
		{ID: "g5", ObjectLevelsID: "wt1", UserID: "u2", Role: constants.RoleRequester},
	}}
	projectRepo := &fakeProjectRepo{projects: []entities.Project{
		{ID: "p1", ObjectID: "obj1", IsActive: true},
		{ID: "p2", ObjectID: "obj2", IsActive: false},
	}}
	return refRepo, roleRepo, projectRepo
}

func TestRequestObjectService_GetAvailableForUser(t *testing.T) {
	refRepo, roleRepo, projectRepo := visibilityFixture()
	service := NewRequestObjectService(refRepo, roleRepo, projectRepo)

	objects, err := service.GetAvailableForUser(context.Background(), "u1")
	require.NoError(t, err)

	// Уровень под неактивным проектом исключён, дубликат схлопнут.
	require.Len(t, objects, 1)
	assert.Equal(t, "wt1", objects[0].ID)
	assert.Equal(t, "Tower A - Block 1 - Contract X - Excavation", objects[0].Name.String)
}

func TestRequestObjectService_GetAvailableForUser_NoGrants(t *testing.T) {
	refRepo, roleRepo, projectRepo := visibilityFixture()
	service := NewRequestObjectService(refRepo, roleRepo, projectRepo)

	objects, err := service.GetAvailableForUser(context.Background(), "u9")
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestRequestObjectService_GetAll(t *testing.T) {
	refRepo, roleRepo, projectRepo := visibilityFixture()
	service := NewRequestObjectService(refRepo, roleRepo, projectRepo)

	objects, err := service.GetAll(context.Background())
	require.NoError(t, err)

	require.Len(t, objects, 1)
	assert.Equal(t, "wt1", objects[0].ID)
}

func TestRequestObjectService_UnknownLevelDropped(t *testing.T) {
	refRepo, roleRepo, projectRepo := visibilityFixture()
	roleRepo.grants = append(roleRepo.grants, entities.ProjectUserRole{
		ID: "g9", ObjectLevelsID: "ghost", UserID: "u1", Role: constants.RoleRequester,
	})
	service := NewRequestObjectService(refRepo, roleRepo, projectRepo)

	objects, err := service.GetAvailableForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "wt1", objects[0].ID)
}
