package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
)

func itemFixture() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: []entities.SupplyRequest{
			{ID: 7, ObjectLevelsID: "wt1", CreatedBy: "u1", StatusID: "st1", CreatedAt: time.Now()},
		},
		items: []entities.RequestItem{
			{ID: "i1", RequestID: 7, Num: 4, Quantity: 2},
		},
		nomenclature: map[string]entities.NomenclatureRef{
			"n1": {ID: "n1", Name: "Кабель ВВГ", UnitID: "un1", WarehouseCategoryID: "wc1"},
		},
	}
}

func TestRequestItemService_Create_InheritsFromNomenclature(t *testing.T) {
	repo := itemFixture()
	service := NewRequestItemService(repo)

	item, err := service.Create(context.Background(), 7, dto.CreateRequestItemDTO{
		NomenclatureID: strPtr("n1"),
	})
	require.NoError(t, err)

	assert.Equal(t, "n1", item.NomenclatureID.String)
	assert.Equal(t, "Кабель ВВГ", item.Name.String)
	assert.Equal(t, "un1", item.UnitID.String)
	assert.Equal(t, "wc1", item.WarehouseCategoryID.String)
	assert.Equal(t, 1.0, item.Quantity)
	// Следующий свободный номер после существующей позиции с num=4.
	assert.Equal(t, 5, item.Num)
}

func TestRequestItemService_Create_ExplicitFieldsWin(t *testing.T) {
	repo := itemFixture()
	service := NewRequestItemService(repo)

	item, err := service.Create(context.Background(), 7, dto.CreateRequestItemDTO{
		NomenclatureID: strPtr("n1"),
		Name:           strPtr("Кабель по смете"),
		Quantity:       floatPtr(12),
		Num:            intPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, "Кабель по смете", item.Name.String)
	assert.Equal(t, 12.0, item.Quantity)
	assert.Equal(t, 1, item.Num)
}

func TestRequestItemService_Create_UnknownNomenclature(t *testing.T) {
	service := NewRequestItemService(itemFixture())

	_, err := service.Create(context.Background(), 7, dto.CreateRequestItemDTO{
		NomenclatureID: strPtr("ghost"),
	})
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestRequestItemService_Create_MissingRequest(t *testing.T) {
	service := NewRequestItemService(itemFixture())

	_, err := service.Create(context.Background(), 999, dto.CreateRequestItemDTO{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRequestItemService_Update_Patch(t *testing.T) {
	repo := itemFixture()
	service := NewRequestItemService(repo)

	item, err := service.Update(context.Background(), 7, "i1", dto.UpdateRequestItemDTO{
		Quantity: floatPtr(9),
		Comment:  strPtr("уточнено"),
	})
	require.NoError(t, err)

	assert.Equal(t, 9.0, item.Quantity)
	assert.Equal(t, "уточнено", item.Comment.String)
	// Остальные поля не тронуты.
	assert.Equal(t, 4, item.Num)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
