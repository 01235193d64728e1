package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/internal/repositories"
	"github.com/stepanovme/SupplyServiceApi/pkg/constants"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
	"github.com/stepanovme/SupplyServiceApi/pkg/filestorage"
)

// RequestFileServiceInterface - вложения заявок: загрузка на локальный
// диск, выдача и мягкое удаление с аудитом.
type RequestFileServiceInterface interface {
	Upload(ctx context.Context, requestID int64, actorID string, fileHeader *multipart.FileHeader, description *string) (dto.UploadedFileDTO, error)
	List(ctx context.Context, requestID int64) ([]dto.RequestFileDTO, error)
	Download(ctx context.Context, requestID int64, linkID, actorID string) (dto.DownloadFileDTO, error)
	Delete(ctx context.Context, requestID int64, linkID, actorID string) error
}

type requestFileService struct {
	fileRepo    repositories.RequestFileRepositoryInterface
	requestRepo repositories.RequestRepositoryInterface
	storage     filestorage.FileStorageInterface
	logger      *zap.SugaredLogger
}

func NewRequestFileService(
	fileRepo repositories.RequestFileRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	storage filestorage.FileStorageInterface,
	logger *zap.SugaredLogger,
) RequestFileServiceInterface {
	return &requestFileService{
		fileRepo:    fileRepo,
		requestRepo: requestRepo,
		storage:     storage,
		logger:      logger,
	}
}

func (s *requestFileService) Upload(ctx context.Context, requestID int64, actorID string, fileHeader *multipart.FileHeader, description *string) (dto.UploadedFileDTO, error) {
	exists, err := s.requestRepo.RequestExists(ctx, requestID)
	if err != nil {
		return dto.UploadedFileDTO{}, err
	}
	if !exists {
		return dto.UploadedFileDTO{}, apperrors.ErrNotFound
	}

	fileType, err := s.fileRepo.FindFileTypeByCode(ctx, constants.FileTypeRequestAttachment)
	if err != nil {
		return dto.UploadedFileDTO{}, err
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if !extensionAllowed(extension, fileType.AllowedExtensions) {
		return dto.UploadedFileDTO{}, apperrors.NewInvalidInputError("расширение %q не разрешено для вложений заявок", extension)
	}
	if fileHeader.Size > int64(fileType.MaxSizeMB)*1024*1024 {
		return dto.UploadedFileDTO{}, apperrors.NewInvalidInputError("файл превышает лимит %d МБ", fileType.MaxSizeMB)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return dto.UploadedFileDTO{}, fmt.Errorf("ошибка открытия загружаемого файла: %w", err)
	}
	defer src.Close()

	storageName := uuid.NewString()
	if extension != "" {
		storageName += "." + extension
	}
	prefix := fmt.Sprintf("requests/%d", requestID)

	hasher := md5.New()
	filePath, err := s.storage.Save(io.TeeReader(src, hasher), storageName, prefix)
	if err != nil {
		return dto.UploadedFileDTO{}, fmt.Errorf("ошибка сохранения файла на диск: %w", err)
	}

	file := entities.File{
		ID:           uuid.NewString(),
		OriginalName: fileHeader.Filename,
		StorageName:  storageName,
		FileTypeID:   fileType.ID,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Extension:    extension,
		FileSize:     fileHeader.Size,
		MD5Hash:      hex.EncodeToString(hasher.Sum(nil)),
		FilePath:     filePath,
		Version:      1,
		UploadedBy:   actorID,
		Status:       constants.FileStatusActive,
	}
	if err := s.fileRepo.CreateFile(ctx, file); err != nil {
		return dto.UploadedFileDTO{}, err
	}

	link := entities.RequestFile{
		ID:          uuid.NewString(),
		RequestID:   requestID,
		FileID:      file.ID,
		LinkType:    "attachment",
		Description: description,
		CreatedBy:   &actorID,
	}
	if err := s.fileRepo.CreateRequestFile(ctx, link); err != nil {
		return dto.UploadedFileDTO{}, err
	}

	if err := s.audit(ctx, file.ID, constants.FileActionUpload, actorID); err != nil {
		return dto.UploadedFileDTO{}, err
	}
	s.logger.Infof("к заявке %d загружен файл %s (%s)", requestID, file.OriginalName, file.ID)

	return dto.UploadedFileDTO{
		ID:           link.ID,
		RequestID:    requestID,
		OriginalName: file.OriginalName,
		MimeType:     file.MimeType,
		Extension:    file.Extension,
		FileSize:     file.FileSize,
		FilePath:     file.FilePath,
	}, nil
}

func (s *requestFileService) List(ctx context.Context, requestID int64) ([]dto.RequestFileDTO, error) {
	exists, err := s.requestRepo.RequestExists(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	links, err := s.fileRepo.GetRequestFiles(ctx, requestID)
	if err != nil {
		return nil, err
	}
	fileType, err := s.fileRepo.FindFileTypeByCode(ctx, constants.FileTypeRequestAttachment)
	if err != nil {
		return nil, err
	}

	result := make([]dto.RequestFileDTO, 0, len(links))
	for _, link := range links {
		file, err := s.fileRepo.FindFile(ctx, link.FileID)
		if err != nil {
			// Файл помечен удалённым - привязка не показывается.
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}

		result = append(result, dto.RequestFileDTO{
			ID:            link.ID,
			RequestFileID: link.ID,
			RequestID:     link.RequestID,
			LinkType:      link.LinkType,
			Description:   null.StringFromPtr(link.Description),
			IsMain:        link.IsMain,
			SortOrder:     link.SortOrder,
			OriginalName:  file.OriginalName,
			MimeType:      file.MimeType,
			Extension:     file.Extension,
			FileSize:      file.FileSize,
			UploadedBy:    file.UploadedBy,
			UploadedAt:    file.UploadedAt,
			FileType: dto.ShortFileTypeDTO{
				ID:   fileType.ID,
				Code: fileType.Code,
				Name: fileType.Name,
			},
			DownloadURL: fmt.Sprintf("/api/supply/requests/%d/attachments/%s/download", requestID, link.ID),
		})
	}
	return result, nil
}

func (s *requestFileService) Download(ctx context.Context, requestID int64, linkID, actorID string) (dto.DownloadFileDTO, error) {
	link, err := s.fileRepo.FindRequestFile(ctx, requestID, linkID)
	if err != nil {
		return dto.DownloadFileDTO{}, err
	}
	file, err := s.fileRepo.FindFile(ctx, link.FileID)
	if err != nil {
		return dto.DownloadFileDTO{}, err
	}
	if !s.storage.Exists(file.FilePath) {
		return dto.DownloadFileDTO{}, apperrors.ErrNotFound
	}

	if err := s.audit(ctx, file.ID, constants.FileActionDownload, actorID); err != nil {
		return dto.DownloadFileDTO{}, err
	}

	return dto.DownloadFileDTO{
		Path:      file.FilePath,
		Filename:  file.OriginalName,
		MediaType: file.MimeType,
	}, nil
}

// Delete - мягкое удаление: файл помечается удалённым, привязка
// снимается, содержимое на диске не трогается.
func (s *requestFileService) Delete(ctx context.Context, requestID int64, linkID, actorID string) error {
	link, err := s.fileRepo.FindRequestFile(ctx, requestID, linkID)
	if err != nil {
		return err
	}
	if err := s.fileRepo.MarkFileDeleted(ctx, link.FileID); err != nil {
		return err
	}
	if err := s.fileRepo.DeleteRequestFile(ctx, linkID); err != nil {
		return err
	}
	if err := s.audit(ctx, link.FileID, constants.FileActionDelete, actorID); err != nil {
		return err
	}
	s.logger.Infof("из заявки %d удалено вложение %s", requestID, linkID)
	return nil
}

func (s *requestFileService) audit(ctx context.Context, fileID, action, actorID string) error {
	return s.fileRepo.CreateAudit(ctx, entities.FileAudit{
		ID:     uuid.NewString(),
		FileID: fileID,
		Action: action,
		UserID: actorID,
	})
}

func extensionAllowed(extension string, allowed []string) bool {
	for _, candidate := range allowed {
		if strings.EqualFold(strings.TrimPrefix(candidate, "."), extension) {
			return true
		}
	}
	return false
}
