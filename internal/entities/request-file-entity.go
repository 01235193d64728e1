package entities

import "time"

type FileType struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	AllowedExtensions []string  `json:"allowed_extensions"`
	MaxSizeMB         int       `json:"max_size_mb"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

type File struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	StorageName  string    `json:"storage_name"`
	FileTypeID   string    `json:"file_type_id"`
	MimeType     string    `json:"mime_type"`
	Extension    string    `json:"extension"`
	FileSize     int64     `json:"file_size"`
	MD5Hash      string    `json:"md5_hash"`
	FilePath     string    `json:"file_path"`
	Version      int       `json:"version"`
	UploadedBy   string    `json:"uploaded_by"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Status       string    `json:"status"`
}

type RequestFile struct {
	ID          string    `json:"id"`
	RequestID   int64     `json:"request_id"`
	FileID      string    `json:"file_id"`
	LinkType    string    `json:"link_type"`
	Description *string   `json:"description"`
	IsMain      bool      `json:"is_main"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   *string   `json:"created_by"`
}

type FileAudit struct {
	ID        string    `json:"id"`
	FileID    string    `json:"file_id"`
	Action    string    `json:"action"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
