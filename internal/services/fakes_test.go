package services

import (
	"context"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
)

func strPtr(s string) *string { return &s }

// fakeReferenceRepo держит справочную базу в памяти и считает пакетные
// обращения.
type fakeReferenceRepo struct {
	levels    map[string]entities.ObjectLevel
	objects   map[string]entities.RefObject
	contracts map[string]entities.ContractRef
	workTypes map[string]entities.WorkTypeRef
	byType    map[string][]string

	levelsCalls    int
	objectsCalls   int
	contractsCalls int
	workTypesCalls int
}

func (f *fakeReferenceRepo) GetLevelsByIDs(_ context.Context, ids []string) ([]entities.ObjectLevel, error) {
	f.levelsCalls++
	result := make([]entities.ObjectLevel, 0, len(ids))
	for _, id := range ids {
		if level, ok := f.levels[id]; ok {
			result = append(result, level)
		}
	}
	return result, nil
}

func (f *fakeReferenceRepo) GetLevelsTree(ctx context.Context, ids []string) (map[string]entities.ObjectLevel, error) {
	tree := make(map[string]entities.ObjectLevel)
	pending := append([]string(nil), ids...)
	for len(pending) > 0 {
		id := pending[0]
		pending = pending[1:]
		if _, ok := tree[id]; ok {
			continue
		}
		level, ok := f.levels[id]
		if !ok {
			continue
		}
		tree[id] = level
		if level.ParentID != nil {
			pending = append(pending, *level.ParentID)
		}
	}
	return tree, nil
}

func (f *fakeReferenceRepo) GetLevelIDsByType(_ context.Context, levelType string) ([]string, error) {
	return f.byType[levelType], nil
}

func (f *fakeReferenceRepo) GetObjectsByIDs(_ context.Context, ids []string) ([]entities.RefObject, error) {
	f.objectsCalls++
	result := make([]entities.RefObject, 0, len(ids))
	for _, id := range ids {
		if object, ok := f.objects[id]; ok {
			result = append(result, object)
		}
	}
	return result, nil
}

func (f *fakeReferenceRepo) GetContractsByIDs(_ context.Context, ids []string) ([]entities.ContractRef, error) {
	f.contractsCalls++
	result := make([]entities.ContractRef, 0, len(ids))
	for _, id := range ids {
		if contract, ok := f.contracts[id]; ok {
			result = append(result, contract)
		}
	}
	return result, nil
}

func (f *fakeReferenceRepo) GetWorkTypesByIDs(_ context.Context, ids []string) ([]entities.WorkTypeRef, error) {
	f.workTypesCalls++
	result := make([]entities.WorkTypeRef, 0, len(ids))
	for _, id := range ids {
		if workType, ok := f.workTypes[id]; ok {
			result = append(result, workType)
		}
	}
	return result, nil
}

type fakeAuthRepo struct {
	users map[string]entities.AuthUser
	calls int
}

func (f *fakeAuthRepo) GetByIDs(_ context.Context, ids []string) ([]entities.AuthUser, error) {
	f.calls++
	seen := make(map[string]struct{}, len(ids))
	result := make([]entities.AuthUser, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if user, ok := f.users[id]; ok {
			result = append(result, user)
		}
	}
	return result, nil
}

// fakeRequestRepo - база снабжения в памяти.
type fakeRequestRepo struct {
	requests     []entities.SupplyRequest
	items        []entities.RequestItem
	logs         []entities.RequestLog
	statuses     map[string]entities.StatusRef
	nomenclature map[string]entities.NomenclatureRef
	units        map[string]entities.UnitRef
	categories   map[string]entities.WarehouseCategoryRef

	nomenclatureCalls int
	unitsCalls        int
	categoriesCalls   int
	statusesCalls     int
	itemsCalls        int
	logsCalls         int

	createdItems []entities.RequestItem
	updates      map[int64]map[string]interface{}
}

func (f *fakeRequestRepo) GetAllRequests(_ context.Context) ([]entities.SupplyRequest, error) {
	return f.requests, nil
}

func (f *fakeRequestRepo) RequestExists(_ context.Context, id int64) (bool, error) {
	for _, request := range f.requests {
		if request.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) CreateRequest(_ context.Context, request entities.SupplyRequest) (entities.SupplyRequest, error) {
	request.ID = int64(len(f.requests) + 1)
	f.requests = append([]entities.SupplyRequest{request}, f.requests...)
	return request, nil
}

func (f *fakeRequestRepo) UpdateRequest(_ context.Context, id int64, updates map[string]interface{}) error {
	if f.updates == nil {
		f.updates = map[int64]map[string]interface{}{}
	}
	f.updates[id] = updates
	return nil
}

func (f *fakeRequestRepo) GetItemsByRequestIDs(_ context.Context, requestIDs []int64) ([]entities.RequestItem, error) {
	f.itemsCalls++
	wanted := make(map[int64]struct{}, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = struct{}{}
	}
	result := make([]entities.RequestItem, 0)
	for _, item := range f.items {
		if _, ok := wanted[item.RequestID]; ok {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) NextItemNum(_ context.Context, requestID int64) (int, error) {
	max := 0
	for _, item := range f.items {
		if item.RequestID == requestID && item.Num > max {
			max = item.Num
		}
	}
	return max + 1, nil
}

func (f *fakeRequestRepo) CreateItem(_ context.Context, item entities.RequestItem) error {
	f.items = append(f.items, item)
	f.createdItems = append(f.createdItems, item)
	return nil
}

func (f *fakeRequestRepo) FindItem(_ context.Context, requestID int64, itemID string) (entities.RequestItem, error) {
	for _, item := range f.items {
		if item.RequestID == requestID && item.ID == itemID {
			return item, nil
		}
	}
	return entities.RequestItem{}, apperrors.ErrNotFound
}

func (f *fakeRequestRepo) SaveItem(_ context.Context, updated entities.RequestItem) error {
	for i, item := range f.items {
		if item.ID == updated.ID {
			f.items[i] = updated
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeRequestRepo) GetLogsByRequestIDs(_ context.Context, requestIDs []int64) ([]entities.RequestLog, error) {
	f.logsCalls++
	wanted := make(map[int64]struct{}, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = struct{}{}
	}
	result := make([]entities.RequestLog, 0)
	for _, log := range f.logs {
		if _, ok := wanted[log.RequestID]; ok {
			result = append(result, log)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) CreateLog(_ context.Context, log entities.RequestLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeRequestRepo) FindLog(_ context.Context, requestID int64, logID string) (entities.RequestLog, error) {
	for _, log := range f.logs {
		if log.RequestID == requestID && log.ID == logID {
			return log, nil
		}
	}
	return entities.RequestLog{}, apperrors.ErrNotFound
}

func (f *fakeRequestRepo) SaveLog(_ context.Context, updated entities.RequestLog) error {
	for i, log := range f.logs {
		if log.ID == updated.ID {
			f.logs[i] = updated
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeRequestRepo) DeleteLog(_ context.Context, requestID int64, logID string) error {
	for i, log := range f.logs {
		if log.RequestID == requestID && log.ID == logID {
			f.logs = append(f.logs[:i], f.logs[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeRequestRepo) GetStatusesByIDs(_ context.Context, ids []string) ([]entities.StatusRef, error) {
	f.statusesCalls++
	result := make([]entities.StatusRef, 0, len(ids))
	for _, id := range uniqueTestIDs(ids) {
		if status, ok := f.statuses[id]; ok {
			result = append(result, status)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) GetNomenclatureByIDs(_ context.Context, ids []string) ([]entities.NomenclatureRef, error) {
	f.nomenclatureCalls++
	result := make([]entities.NomenclatureRef, 0, len(ids))
	for _, id := range uniqueTestIDs(ids) {
		if n, ok := f.nomenclature[id]; ok {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) FindNomenclature(_ context.Context, id string) (entities.NomenclatureRef, error) {
	if n, ok := f.nomenclature[id]; ok {
		return n, nil
	}
	return entities.NomenclatureRef{}, apperrors.ErrNotFound
}

func (f *fakeRequestRepo) GetUnitsByIDs(_ context.Context, ids []string) ([]entities.UnitRef, error) {
	f.unitsCalls++
	result := make([]entities.UnitRef, 0, len(ids))
	for _, id := range uniqueTestIDs(ids) {
		if unit, ok := f.units[id]; ok {
			result = append(result, unit)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) GetWarehouseCategoriesByIDs(_ context.Context, ids []string) ([]entities.WarehouseCategoryRef, error) {
	f.categoriesCalls++
	result := make([]entities.WarehouseCategoryRef, 0, len(ids))
	for _, id := range uniqueTestIDs(ids) {
		if category, ok := f.categories[id]; ok {
			result = append(result, category)
		}
	}
	return result, nil
}

type fakeProjectRepo struct {
	projects []entities.Project
}

func (f *fakeProjectRepo) GetAllProjects(_ context.Context) ([]entities.Project, error) {
	return f.projects, nil
}

func (f *fakeProjectRepo) CreateProject(_ context.Context, project entities.Project) error {
	f.projects = append(f.projects, project)
	return nil
}

func (f *fakeProjectRepo) UpdateProject(_ context.Context, _ string, _ map[string]interface{}) error {
	return nil
}

func (f *fakeProjectRepo) GetActiveObjectIDs(_ context.Context, candidates []string) (map[string]struct{}, error) {
	active := make(map[string]struct{})
	for _, candidate := range candidates {
		for _, project := range f.projects {
			if project.ObjectID == candidate && project.IsActive && !project.IsHide {
				active[candidate] = struct{}{}
			}
		}
	}
	return active, nil
}

type fakeRoleRepo struct {
	grants []entities.ProjectUserRole
}

func (f *fakeRoleRepo) GetAll(_ context.Context) ([]entities.ProjectUserRole, error) {
	return f.grants, nil
}

func (f *fakeRoleRepo) GetObjectLevelIDsByUserAndRole(_ context.Context, userID, role string) ([]string, error) {
	ids := make([]string, 0)
	for _, grant := range f.grants {
		if grant.UserID == userID && grant.Role == role {
			ids = append(ids, grant.ObjectLevelsID)
		}
	}
	return ids, nil
}

func (f *fakeRoleRepo) Create(_ context.Context, grant entities.ProjectUserRole) error {
	f.grants = append(f.grants, grant)
	return nil
}

func (f *fakeRoleRepo) Delete(_ context.Context, id string) error {
	for i, grant := range f.grants {
		if grant.ID == id {
			f.grants = append(f.grants[:i], f.grants[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func uniqueTestIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
