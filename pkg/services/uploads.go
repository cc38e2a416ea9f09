package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/apperrors"
	"github.com/campushub/showcase-api/pkg/auth"
	"github.com/campushub/showcase-api/pkg/models"
	"github.com/campushub/showcase-api/pkg/policy"
)

// MaxUploadBatch caps the number of files in one multi-file upload.
const MaxUploadBatch = 5

// allowedExtensions lists the accepted document types by file extension.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".zip":  true,
	".rar":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// allowedMIMETypes lists the accepted declared content types.
var allowedMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"application/x-rar-compressed": true,
	"application/vnd.rar":          true,
	"image/jpeg":                   true,
	"image/png":                    true,
}

// UploadService stores project documents on disk.
type UploadService interface {
	Save(ident *auth.Identity, file *multipart.FileHeader) (*models.Document, error)
	SaveAll(ident *auth.Identity, files []*multipart.FileHeader) ([]*models.Document, error)
	Delete(ident *auth.Identity, filename string) error
}

type uploadService struct {
	dir     string
	maxSize int64
	logger  *zap.Logger
}

// NewUploadService creates an upload service writing into dir. Files larger
// than maxSize bytes are rejected.
func NewUploadService(dir string, maxSize int64, logger *zap.Logger) UploadService {
	return &uploadService{
		dir:     dir,
		maxSize: maxSize,
		logger:  logger,
	}
}

// Save validates and stores one uploaded file under a generated unique
// name, returning its descriptor.
func (s *uploadService) Save(ident *auth.Identity, file *multipart.FileHeader) (*models.Document, error) {
	if err := policy.Check(policy.ActionUploadFile, callerFor(ident, false)); err != nil {
		return nil, err
	}
	return s.store(file)
}

// SaveAll stores a batch of uploaded files. The batch fails as a whole on
// the first invalid file; files already written stay on disk.
func (s *uploadService) SaveAll(ident *auth.Identity, files []*multipart.FileHeader) ([]*models.Document, error) {
	if err := policy.Check(policy.ActionUploadFile, callerFor(ident, false)); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("documents", "no files uploaded")
	}
	if len(files) > MaxUploadBatch {
		return nil, apperrors.NewValidationError("documents",
			fmt.Sprintf("cannot upload more than %d files at once", MaxUploadBatch))
	}

	documents := make([]*models.Document, 0, len(files))
	for _, file := range files {
		document, err := s.store(file)
		if err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}
	return documents, nil
}

// Delete removes a stored file by its generated name. The name must not
// contain path components; traversal outside the upload directory is
// rejected.
func (s *uploadService) Delete(ident *auth.Identity, filename string) error {
	if err := policy.Check(policy.ActionUploadFile, callerFor(ident, false)); err != nil {
		return err
	}
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return apperrors.NewValidationError("filename", "invalid filename")
	}

	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.Info("Upload deleted", zap.String("filename", filename))

	return nil
}

func (s *uploadService) store(file *multipart.FileHeader) (*models.Document, error) {
	if err := s.validate(file); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("document-%s%s", uuid.New().String(), ext)
	path := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	// The size check above trusts the multipart header; the hard limit here
	// caps what actually reaches disk.
	written, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if written > s.maxSize {
		_ = os.Remove(path)
		return nil, apperrors.NewValidationError("document", s.sizeMessage())
	}

	s.logger.Info("Upload stored",
		zap.String("filename", name),
		zap.String("original_name", file.Filename),
		zap.Int64("size", written))

	return &models.Document{
		Filename:     name,
		OriginalName: file.Filename,
		StoragePath:  path,
		Size:         written,
	}, nil
}

func (s *uploadService) validate(file *multipart.FileHeader) error {
	if file.Size > s.maxSize {
		return apperrors.NewValidationError("document", s.sizeMessage())
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return apperrors.NewValidationError("document",
			"file type not allowed; accepted types are pdf, doc, docx, zip, rar, jpg, jpeg, png")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" {
		contentType, _, _ = strings.Cut(contentType, ";")
		contentType = strings.TrimSpace(contentType)
		if !allowedMIMETypes[contentType] {
			return apperrors.NewValidationError("document",
				fmt.Sprintf("content type %q not allowed", contentType))
		}
	}

	return nil
}

func (s *uploadService) sizeMessage() string {
	return fmt.Sprintf("file size cannot exceed %d bytes", s.maxSize)
}

// Ensure uploadService implements UploadService at compile time.
var _ UploadService = (*uploadService)(nil)
