package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/pkg/constants"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

const (
	fileTypeTable  = "file_types"
	fileTypeFields = "id, code, name, description, allowed_extensions, max_size_mb, is_active, created_at"

	fileTable  = "files"
	fileFields = "id, original_name, storage_name, file_type_id, mime_type, extension, file_size, md5_hash, file_path, version, uploaded_by, uploaded_at, status"

	requestFileTable  = "request_files"
	requestFileFields = "id, request_id, file_id, link_type, description, is_main, sort_order, created_at, created_by"

	fileAuditTable = "file_audit"
)

type RequestFileRepositoryInterface interface {
	FindFileTypeByCode(ctx context.Context, code string) (entities.FileType, error)
	CreateFile(ctx context.Context, file entities.File) error
	FindFile(ctx context.Context, id string) (entities.File, error)
	MarkFileDeleted(ctx context.Context, id string) error
	CreateRequestFile(ctx context.Context, link entities.RequestFile) error
	GetRequestFiles(ctx context.Context, requestID int64) ([]entities.RequestFile, error)
	FindRequestFile(ctx context.Context, requestID int64, linkID string) (entities.RequestFile, error)
	DeleteRequestFile(ctx context.Context, linkID string) error
	CreateAudit(ctx context.Context, audit entities.FileAudit) error
}

type requestFileRepository struct {
	storage *pgxpool.Pool
}

func NewRequestFileRepository(storage *pgxpool.Pool) RequestFileRepositoryInterface {
	return &requestFileRepository{storage: storage}
}

func (r *requestFileRepository) FindFileTypeByCode(ctx context.Context, code string) (entities.FileType, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE code = $1 AND is_active", fileTypeFields, fileTypeTable)

	var fileType entities.FileType
	var description sql.NullString
	err := r.storage.QueryRow(ctx, query, code).Scan(
		&fileType.ID, &fileType.Code, &fileType.Name, &description,
		&fileType.AllowedExtensions, &fileType.MaxSizeMB, &fileType.IsActive, &fileType.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.FileType{}, apperrors.ErrNotFound
		}
		return entities.FileType{}, fmt.Errorf("ошибка выборки типа файла %q: %w", code, err)
	}
	fileType.Description = utils.NullStringToPtr(description)
	return fileType, nil
}

func (r *requestFileRepository) CreateFile(ctx context.Context, file entities.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, original_name, storage_name, file_type_id, mime_type, extension, file_size, md5_hash, file_path, version, uploaded_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, fileTable)

	_, err := r.storage.Exec(ctx, query,
		file.ID, file.OriginalName, file.StorageName, file.FileTypeID,
		file.MimeType, file.Extension, file.FileSize, file.MD5Hash,
		file.FilePath, file.Version, file.UploadedBy, file.Status,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания записи файла: %w", err)
	}
	return nil
}

func (r *requestFileRepository) FindFile(ctx context.Context, id string) (entities.File, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND status = $2", fileFields, fileTable)

	var file entities.File
	err := r.storage.QueryRow(ctx, query, id, constants.FileStatusActive).Scan(
		&file.ID, &file.OriginalName, &file.StorageName, &file.FileTypeID,
		&file.MimeType, &file.Extension, &file.FileSize, &file.MD5Hash,
		&file.FilePath, &file.Version, &file.UploadedBy, &file.UploadedAt, &file.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.File{}, apperrors.ErrNotFound
		}
		return entities.File{}, fmt.Errorf("ошибка выборки файла %s: %w", id, err)
	}
	return file, nil
}

func (r *requestFileRepository) MarkFileDeleted(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET status = $1 WHERE id = $2", fileTable)

	tag, err := r.storage.Exec(ctx, query, constants.FileStatusDeleted, id)
	if err != nil {
		return fmt.Errorf("ошибка пометки файла %s удалённым: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *requestFileRepository) CreateRequestFile(ctx context.Context, link entities.RequestFile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, request_id, file_id, link_type, description, is_main, sort_order, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, requestFileTable)

	_, err := r.storage.Exec(ctx, query,
		link.ID, link.RequestID, link.FileID, link.LinkType,
		link.Description, link.IsMain, link.SortOrder, link.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("ошибка привязки файла к заявке: %w", err)
	}
	return nil
}

func (r *requestFileRepository) GetRequestFiles(ctx context.Context, requestID int64) ([]entities.RequestFile, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(requestFileFields).
		From(requestFileTable).
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("sort_order", "created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetRequestFiles: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки файлов заявки %d: %w", requestID, err)
	}
	defer rows.Close()

	links := make([]entities.RequestFile, 0)
	for rows.Next() {
		link, err := scanRequestFile(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (r *requestFileRepository) FindRequestFile(ctx context.Context, requestID int64, linkID string) (entities.RequestFile, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND request_id = $2", requestFileFields, requestFileTable)

	link, err := scanRequestFile(r.storage.QueryRow(ctx, query, linkID, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.RequestFile{}, apperrors.ErrNotFound
		}
		return entities.RequestFile{}, err
	}
	return link, nil
}

func (r *requestFileRepository) DeleteRequestFile(ctx context.Context, linkID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", requestFileTable)

	tag, err := r.storage.Exec(ctx, query, linkID)
	if err != nil {
		return fmt.Errorf("ошибка удаления привязки файла %s: %w", linkID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *requestFileRepository) CreateAudit(ctx context.Context, audit entities.FileAudit) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, file_id, action, user_id)
		VALUES ($1, $2, $3, $4)`, fileAuditTable)

	_, err := r.storage.Exec(ctx, query, audit.ID, audit.FileID, audit.Action, audit.UserID)
	if err != nil {
		return fmt.Errorf("ошибка записи аудита файла: %w", err)
	}
	return nil
}

func scanRequestFile(row pgx.Row) (entities.RequestFile, error) {
	var link entities.RequestFile
	var description, createdBy sql.NullString

	err := row.Scan(
		&link.ID, &link.RequestID, &link.FileID, &link.LinkType,
		&description, &link.IsMain, &link.SortOrder, &link.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.RequestFile{}, err
		}
		return entities.RequestFile{}, fmt.Errorf("ошибка сканирования привязки файла: %w", err)
	}

	link.Description = utils.NullStringToPtr(description)
	link.CreatedBy = utils.NullStringToPtr(createdBy)
	return link, nil
}
