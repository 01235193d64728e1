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
	projectUserRoleTable  = "project_user_roles"
	projectUserRoleFields = "id, object_levels_id, user_id, role"
)

type ProjectUserRoleRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.ProjectUserRole, error)
	// GetObjectLevelIDsByUserAndRole возвращает ID уровней, выданные
	// пользователю под указанной ролью, в порядке выдачи.
	GetObjectLevelIDsByUserAndRole(ctx context.Context, userID, role string) ([]string, error)
	Create(ctx context.Context, grant entities.ProjectUserRole) error
	Delete(ctx context.Context, id string) error
}

type projectUserRoleRepository struct {
	storage *pgxpool.Pool
}

func NewProjectUserRoleRepository(storage *pgxpool.Pool) ProjectUserRoleRepositoryInterface {
	return &projectUserRoleRepository{storage: storage}
}

func (r *projectUserRoleRepository) GetAll(ctx context.Context) ([]entities.ProjectUserRole, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", projectUserRoleFields, projectUserRoleTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки ролей пользователей: %w", err)
	}
	defer rows.Close()

	grants := make([]entities.ProjectUserRole, 0)
	for rows.Next() {
		var grant entities.ProjectUserRole
		if err := rows.Scan(&grant.ID, &grant.ObjectLevelsID, &grant.UserID, &grant.Role); err != nil {
			return nil, fmt.Errorf("ошибка сканирования роли пользователя: %w", err)
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

func (r *projectUserRoleRepository) GetObjectLevelIDsByUserAndRole(ctx context.Context, userID, role string) ([]string, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select("object_levels_id").
		From(projectUserRoleTable).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"role": role}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetObjectLevelIDsByUserAndRole: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки уровней по роли %q: %w", role, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования object_levels_id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *projectUserRoleRepository) Create(ctx context.Context, grant entities.ProjectUserRole) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4)`, projectUserRoleTable, projectUserRoleFields)

	_, err := r.storage.Exec(ctx, query, grant.ID, grant.ObjectLevelsID, grant.UserID, grant.Role)
	if err != nil {
		return fmt.Errorf("ошибка создания роли пользователя: %w", err)
	}
	return nil
}

func (r *projectUserRoleRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", projectUserRoleTable)

	tag, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления роли пользователя %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
