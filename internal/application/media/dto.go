package media

import "time"

// InitiateUploadRequest asks for a presigned upload slot.
type InitiateUploadRequest struct {
	Kind        string `json:"kind" binding:"required"`
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// InitiateUploadResponse carries the presigned URL the client PUTs the
// file to, and the storage key it should send back when attaching the
// file to an aggregate.
type InitiateUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// DownloadURLResponse carries a presigned read URL.
type DownloadURLResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
