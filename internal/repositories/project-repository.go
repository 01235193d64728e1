package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
)

const (
	projectTable  = "projects"
	projectFields = "id, object_id, is_hide, is_active"
)

type ProjectRepositoryInterface interface {
	GetAllProjects(ctx context.Context) ([]entities.Project, error)
	CreateProject(ctx context.Context, project entities.Project) error
	UpdateProject(ctx context.Context, id string, updates map[string]interface{}) error
	// GetActiveObjectIDs возвращает подмножество candidates, для которых
	// есть активный проект (is_active AND NOT is_hide).
	GetActiveObjectIDs(ctx context.Context, candidates []string) (map[string]struct{}, error)
}

type projectRepository struct {
	storage *pgxpool.Pool
}

func NewProjectRepository(storage *pgxpool.Pool) ProjectRepositoryInterface {
	return &projectRepository{storage: storage}
}

func (r *projectRepository) GetAllProjects(ctx context.Context) ([]entities.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", projectFields, projectTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки проектов: %w", err)
	}
	defer rows.Close()

	projects := make([]entities.Project, 0)
	for rows.Next() {
		var project entities.Project
		if err := rows.Scan(&project.ID, &project.ObjectID, &project.IsHide, &project.IsActive); err != nil {
			return nil, fmt.Errorf("ошибка сканирования проекта: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *projectRepository) CreateProject(ctx context.Context, project entities.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4)`, projectTable, projectFields)

	_, err := r.storage.Exec(ctx, query, project.ID, project.ObjectID, project.IsHide, project.IsActive)
	if err != nil {
		return fmt.Errorf("ошибка создания проекта: %w", err)
	}
	return nil
}

func (r *projectRepository) UpdateProject(ctx context.Context, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(projectTable).
		SetMap(updates).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса UpdateProject: %w", err)
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления проекта %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *projectRepository) GetActiveObjectIDs(ctx context.Context, candidates []string) (map[string]struct{}, error) {
	uniq := uniqueIDs(candidates)
	if len(uniq) == 0 {
		return map[string]struct{}{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select("object_id").
		From(projectTable).
		Where(sq.Eq{"object_id": uniq}).
		Where(sq.Eq{"is_active": true}).
		Where(sq.Eq{"is_hide": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetActiveObjectIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки активных объектов: %w", err)
	}
	defer rows.Close()

	active := make(map[string]struct{}, len(uniq))
	for rows.Next() {
		var objectID string
		if err := rows.Scan(&objectID); err != nil {
			return nil, fmt.Errorf("ошибка сканирования object_id проекта: %w", err)
		}
		active[objectID] = struct{}{}
	}
	return active, rows.Err()
}
