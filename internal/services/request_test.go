package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/pkg/constants"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
)

func aggregatorFixture() (*fakeRequestRepo, *fakeAuthRepo, *fakeReferenceRepo) {
	requestRepo := &fakeRequestRepo{
		requests: []entities.SupplyRequest{
			{ID: 2, ObjectLevelsID: "wt1", CreatedBy: "u1", Executor: strPtr("u2"), StatusID: "st1", CreatedAt: time.Now()},
			{ID: 1, ObjectLevelsID: "wt1", CreatedBy: "u5", StatusID: "st1", CreatedAt: time.Now()},
		},
		items: []entities.RequestItem{
			{ID: "i1", RequestID: 2, Num: 1, NomenclatureID: strPtr("n1"), Quantity: 3},
			{ID: "i2", RequestID: 1, Num: 1, NomenclatureID: strPtr("n1"), Quantity: 5},
		},
		logs: []entities.RequestLog{
			{ID: "l1", RequestID: 1, UserID: "u3", StatusName: "Согласовано"},
		},
		statuses: map[string]entities.StatusRef{
			"st1":                         {ID: "st1", Name: "Новая"},
			constants.RequestStatusNewID: {ID: constants.RequestStatusNewID, Name: "Новая"},
		},
		nomenclature: map[string]entities.NomenclatureRef{
			"n1": {ID: "n1", Name: "Арматура", UnitID: "un1", WarehouseCategoryID: "wc1"},
		},
		units: map[string]entities.UnitRef{
			"un1": {ID: "un1", Name: "т"},
		},
		categories: map[string]entities.WarehouseCategoryRef{
			"wc1": {ID: "wc1", Name: "Металлопрокат"},
		},
	}
	authRepo := &fakeAuthRepo{users: map[string]entities.AuthUser{
		"u1": {ID: "u1", Name: strPtr("Иван"), Surname: strPtr("Иванов"), Patronymic: strPtr("Петрович")},
		"u2": {ID: "u2", Name: strPtr("Пётр"), Surname: strPtr("Петров")},
		"u3": {ID: "u3", Surname: strPtr("Сидорова")},
		"u5": {ID: "u5", Name: strPtr("Олег"), Surname: strPtr("Кузнецов")},
	}}
	maps := nameMapsFixture()
	refRepo := &fakeReferenceRepo{
		levels:    maps.Levels,
		objects:   maps.Objects,
		contracts: maps.Contracts,
		workTypes: maps.WorkTypes,
	}
	return requestRepo, authRepo, refRepo
}

func newTestRequestService(requestRepo *fakeRequestRepo, authRepo *fakeAuthRepo, refRepo *fakeReferenceRepo) RequestServiceInterface {
	return NewRequestService(requestRepo, authRepo, refRepo, zap.NewNop().Sugar())
}

func TestRequestService_GetAll_BatchesOncePerKind(t *testing.T) {
	requestRepo, authRepo, refRepo := aggregatorFixture()
	service := newTestRequestService(requestRepo, authRepo, refRepo)

	views, err := service.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	// На страницу - ровно одна пачка каждого вида, сколько бы заявок
	// ни было.
	assert.Equal(t, 1, requestRepo.itemsCalls)
	assert.Equal(t, 1, requestRepo.logsCalls)
	assert.Equal(t, 1, requestRepo.nomenclatureCalls)
	assert.Equal(t, 1, requestRepo.unitsCalls)
	assert.Equal(t, 1, requestRepo.categoriesCalls)
	assert.Equal(t, 1, requestRepo.statusesCalls)
	assert.Equal(t, 1, authRepo.calls)
}

func TestRequestService_GetAll_AssemblesNestedView(t *testing.T) {
	requestRepo, authRepo, refRepo := aggregatorFixture()
	service := newTestRequestService(requestRepo, authRepo, refRepo)

	views, err := service.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Порядок - новые сверху.
	assert.Equal(t, int64(2), views[0].ID)

	view := views[0]
	require.NotNil(t, view.Status)
	assert.Equal(t, "Новая", view.Status.Name)
	assert.Equal(t, "Tower A - Block 1 - Contract X - Excavation", view.ProjectName.String)

	require.Len(t, view.Items, 1)
	require.NotNil(t, view.Items[0].Nomenclature)
	assert.Equal(t, "Арматура", view.Items[0].Nomenclature.Name)
	require.NotNil(t, view.Items[0].Nomenclature.Unit)
	assert.Equal(t, "т", view.Items[0].Nomenclature.Unit.Name)
	require.NotNil(t, view.Items[0].Nomenclature.WarehouseCategory)

	require.NotNil(t, view.CreatedByUser)
	assert.Equal(t, "Иванов И.П.", view.CreatedByUser.ShortFio)
	require.NotNil(t, view.ExecutorUser)
	assert.Equal(t, "Петров П.", view.ExecutorUser.ShortFio)

	logs := views[1].Logs
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].User)
	assert.Equal(t, "Сидорова", logs[0].User.ShortFio)
}

func TestRequestService_GetAvailableForUser_Filter(t *testing.T) {
	requestRepo, authRepo, refRepo := aggregatorFixture()
	service := newTestRequestService(requestRepo, authRepo, refRepo)
	ctx := context.Background()

	cases := []struct {
		userID string
		want   []int64
	}{
		{"u1", []int64{2}}, // автор
		{"u2", []int64{2}}, // исполнитель
		{"u3", []int64{1}}, // согласующий
		{"u4", []int64{}},  // никто
	}
	for _, tc := range cases {
		views, err := service.GetAvailableForUser(ctx, tc.userID)
		require.NoError(t, err, tc.userID)

		got := make([]int64, 0, len(views))
		for _, view := range views {
			got = append(got, view.ID)
		}
		assert.Equal(t, tc.want, got, tc.userID)
	}
}

func TestRequestService_GetByID_MissingRequest(t *testing.T) {
	requestRepo, authRepo, refRepo := aggregatorFixture()
	service := newTestRequestService(requestRepo, authRepo, refRepo)

	_, err := service.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRequestService_GetAvailableForUserByID_ForeignRequest(t *testing.T) {
	requestRepo, authRepo, refRepo := aggregatorFixture()
	service := newTestRequestService(requestRepo, authRepo, refRepo)

	// Заявка 1 существует, но пользователь u1 к ней не причастен.
	_, err := service.GetAvailableForUserByID(context.Background(), "u1", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRequestService_Create(t *testing.T) {
	requestRepo, authRepo, refRepo := aggregatorFixture()
	service := newTestRequestService(requestRepo, authRepo, refRepo)
	ctx := context.Background()

	_, err := service.Create(ctx, dto.CreateRequestDTO{}, "u1")
	require.Error(t, err)
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)

	view, err := service.Create(ctx, dto.CreateRequestDTO{ObjectLevelsID: strPtr("wt1")}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", view.CreatedBy)
	require.NotNil(t, view.Status)
	assert.Equal(t, constants.RequestStatusNewID, requestRepo.requests[0].StatusID)
}

func TestRequestService_Update_OnlyProvidedFields(t *testing.T) {
	requestRepo, authRepo, refRepo := aggregatorFixture()
	service := newTestRequestService(requestRepo, authRepo, refRepo)

	patch := dto.UpdateRequestDTO{
		Executor: strPtr("u2"),
		StatusID: strPtr("st1"),
	}

	_, err := service.Update(context.Background(), 1, patch)
	require.NoError(t, err)

	updates := requestRepo.updates[1]
	assert.Equal(t, map[string]interface{}{
		"executor":  "u2",
		"status_id": "st1",
	}, updates)
}

func TestShortFio(t *testing.T) {
	assert.Equal(t, "Иванов И.П.", shortFio("Иванов", "Иван", "Петрович"))
	assert.Equal(t, "Иванов И.", shortFio("Иванов", "Иван", ""))
	assert.Equal(t, "Иванов", shortFio("Иванов", "", ""))
	assert.Equal(t, "И.П.", shortFio("", "Иван", "Петрович"))
	assert.Equal(t, "", shortFio("", "", ""))
}
