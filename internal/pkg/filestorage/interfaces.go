package filestorage

import "mime/multipart"

// StoredFile describes a file persisted by a FileStorage implementation.
type StoredFile struct {
	// FileName is the generated name on disk (collision free)
	FileName string
	// OriginalName is the client-supplied filename
	OriginalName string
	// RelativePath is the path under the storage root, used for deletion
	RelativePath string
	// URL is the public URL the file is served under
	URL string
	// Size in bytes
	Size int64
	// MimeType as reported by the upload
	MimeType string
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile stores an uploaded file under an optional subdirectory
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error)

	// DeleteFile removes a stored file by its relative path
	DeleteFile(relativePath string) error
}
