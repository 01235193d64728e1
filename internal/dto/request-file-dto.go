package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type UploadedFileDTO struct {
	ID           string `json:"id"`
	RequestID    int64  `json:"request_id"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Extension    string `json:"extension"`
	FileSize     int64  `json:"file_size"`
	FilePath     string `json:"file_path"`
}

type ShortFileTypeDTO struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type RequestFileDTO struct {
	ID            string           `json:"id"`
	RequestFileID string           `json:"request_file_id"`
	RequestID     int64            `json:"request_id"`
	LinkType      string           `json:"link_type"`
	Description   null.String      `json:"description"`
	IsMain        bool             `json:"is_main"`
	SortOrder     int              `json:"sort_order"`
	OriginalName  string           `json:"original_name"`
	MimeType      string           `json:"mime_type"`
	Extension     string           `json:"extension"`
	FileSize      int64            `json:"file_size"`
	UploadedBy    string           `json:"uploaded_by"`
	UploadedAt    time.Time        `json:"uploaded_at"`
	FileType      ShortFileTypeDTO `json:"file_type"`
	DownloadURL   string           `json:"download_url"`
}

// DownloadFileDTO - всё, что нужно контроллеру, чтобы отдать файл.
type DownloadFileDTO struct {
	Path      string `json:"path"`
	Filename  string `json:"filename"`
	MediaType string `json:"media_type"`
}
