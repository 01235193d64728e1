package repositories

import (
	"context"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
)

type levelsFetchFunc func(ctx context.Context, ids []string) ([]entities.ObjectLevel, error)

// loadLevelsTree поднимается по цепочкам parent_id от стартовых уровней
// до корней. Каждая итерация забирает всю границу одним запросом, каждый
// ID запрашивается не более одного раза, поэтому висячие parent_id и
// случайные циклы в данных не зацикливают загрузку.
func loadLevelsTree(ctx context.Context, ids []string, fetch levelsFetchFunc) (map[string]entities.ObjectLevel, error) {
	tree := make(map[string]entities.ObjectLevel)
	requested := make(map[string]struct{})

	frontier := uniqueIDs(ids)
	for len(frontier) > 0 {
		batch := make([]string, 0, len(frontier))
		for _, id := range frontier {
			if _, ok := requested[id]; ok {
				continue
			}
			requested[id] = struct{}{}
			batch = append(batch, id)
		}
		if len(batch) == 0 {
			break
		}

		levels, err := fetch(ctx, batch)
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, level := range levels {
			tree[level.ID] = level
			if level.ParentID != nil && *level.ParentID != "" {
				frontier = append(frontier, *level.ParentID)
			}
		}
	}

	return tree, nil
}
