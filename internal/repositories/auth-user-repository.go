package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

const (
	authUserTable  = "users"
	authUserFields = "id, name, surname, patronymic"
)

// AuthUserRepositoryInterface - чтение пользователей из базы
// аутентификации. Только пакетная выборка: имена подтягиваются к уже
// загруженным заявкам, отсутствующие ID - не ошибка.
type AuthUserRepositoryInterface interface {
	GetByIDs(ctx context.Context, ids []string) ([]entities.AuthUser, error)
}

type authUserRepository struct {
	storage *pgxpool.Pool
}

func NewAuthUserRepository(storage *pgxpool.Pool) AuthUserRepositoryInterface {
	return &authUserRepository{storage: storage}
}

func (r *authUserRepository) GetByIDs(ctx context.Context, ids []string) ([]entities.AuthUser, error) {
	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return []entities.AuthUser{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(authUserFields).
		From(authUserTable).
		Where(sq.Eq{"id": uniq}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetByIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]entities.AuthUser, 0, len(uniq))
	for rows.Next() {
		var user entities.AuthUser
		var name, surname, patronymic sql.NullString
		if err := rows.Scan(&user.ID, &name, &surname, &patronymic); err != nil {
			return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
		}
		user.Name = utils.NullStringToPtr(name)
		user.Surname = utils.NullStringToPtr(surname)
		user.Patronymic = utils.NullStringToPtr(patronymic)
		users = append(users, user)
	}
	return users, rows.Err()
}
