package services

import (
	"context"
	"strings"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/internal/repositories"
	"github.com/stepanovme/SupplyServiceApi/pkg/constants"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

// ProjectNameMaps - справочные карты, достаточные для построения имён
// проектов для целой страницы уровней. Загружаются один раз на страницу,
// BuildProjectName работает только по памяти.
type ProjectNameMaps struct {
	Levels    map[string]entities.ObjectLevel
	Objects   map[string]entities.RefObject
	Contracts map[string]entities.ContractRef
	WorkTypes map[string]entities.WorkTypeRef
}

// LoadProjectReferenceMaps поднимает дерево уровней по levelIDs и одной
// пачкой на вид подтягивает объекты, договоры и виды работ, на которые
// ссылаются узлы дерева.
func LoadProjectReferenceMaps(ctx context.Context, refRepo repositories.ReferenceRepositoryInterface, levelIDs []string) (ProjectNameMaps, error) {
	maps := ProjectNameMaps{
		Levels:    map[string]entities.ObjectLevel{},
		Objects:   map[string]entities.RefObject{},
		Contracts: map[string]entities.ContractRef{},
		WorkTypes: map[string]entities.WorkTypeRef{},
	}

	levels, err := refRepo.GetLevelsTree(ctx, levelIDs)
	if err != nil {
		return ProjectNameMaps{}, err
	}
	maps.Levels = levels

	objectIDs := make([]string, 0, len(levels))
	contractIDs := make([]string, 0)
	workTypeIDs := make([]string, 0)
	for _, level := range levels {
		objectIDs = append(objectIDs, level.ObjectID)
		if level.ContractID != nil {
			contractIDs = append(contractIDs, *level.ContractID)
		}
		if level.WorkType != nil {
			workTypeIDs = append(workTypeIDs, *level.WorkType)
		}
	}

	objects, err := refRepo.GetObjectsByIDs(ctx, objectIDs)
	if err != nil {
		return ProjectNameMaps{}, err
	}
	for _, object := range objects {
		maps.Objects[object.ID] = object
	}

	contracts, err := refRepo.GetContractsByIDs(ctx, contractIDs)
	if err != nil {
		return ProjectNameMaps{}, err
	}
	for _, contract := range contracts {
		maps.Contracts[contract.ID] = contract
	}

	workTypes, err := refRepo.GetWorkTypesByIDs(ctx, workTypeIDs)
	if err != nil {
		return ProjectNameMaps{}, err
	}
	for _, workType := range workTypes {
		maps.WorkTypes[workType.ID] = workType
	}

	return maps, nil
}

// BuildProjectName собирает читаемое имя проекта для уровня иерархии.
// Подъём от целевого узла к корню заполняет не более одного фрагмента
// на тип уровня; значение, найденное ближе к цели, не перезаписывается
// найденным выше. Имя объекта берётся по object_id самого целевого
// узла. Возвращает nil, если уровень неизвестен или все фрагменты
// пусты.
func BuildProjectName(levelID string, maps ProjectNameMaps) *string {
	target, ok := maps.Levels[levelID]
	if !ok {
		return nil
	}

	var section, agreement, workType string

	visited := make(map[string]struct{})
	current := levelID
	for current != "" {
		if _, ok := visited[current]; ok {
			break
		}
		visited[current] = struct{}{}

		level, ok := maps.Levels[current]
		if !ok {
			break
		}

		switch level.LevelType {
		case constants.LevelTypeSection:
			if section == "" {
				section = utils.SafeDeref(level.Name)
			}
		case constants.LevelTypeAgreement:
			if agreement == "" {
				agreement = agreementFragment(level, maps.Contracts)
			}
		case constants.LevelTypeWorkType:
			if workType == "" {
				workType = workTypeFragment(level, maps.WorkTypes)
			}
		}

		if level.ParentID == nil {
			break
		}
		current = *level.ParentID
	}

	objectName := ""
	if object, ok := maps.Objects[target.ObjectID]; ok {
		objectName = utils.SafeDeref(object.ShortName)
		if objectName == "" {
			objectName = utils.SafeDeref(object.FullName)
		}
	}

	parts := make([]string, 0, 4)
	for _, part := range []string{objectName, section, agreement, workType} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return utils.ToPtr(strings.Join(parts, " - "))
}

func agreementFragment(level entities.ObjectLevel, contracts map[string]entities.ContractRef) string {
	if level.ContractID != nil {
		if contract, ok := contracts[*level.ContractID]; ok && contract.Name != "" {
			return contract.Name
		}
	}
	return utils.SafeDeref(level.Name)
}

func workTypeFragment(level entities.ObjectLevel, workTypes map[string]entities.WorkTypeRef) string {
	if level.WorkType != nil {
		if workType, ok := workTypes[*level.WorkType]; ok {
			if name := utils.SafeDeref(workType.Name); name != "" {
				return name
			}
		}
	}
	return utils.SafeDeref(level.Name)
}
