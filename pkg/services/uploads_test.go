package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/apperrors"
)

const testMaxUploadSize = 1 << 20

// fileHeader builds a multipart.FileHeader backed by an in-memory form.
func fileHeader(t *testing.T, field, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		`form-data; name="`+field+`"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File[field]
	require.Len(t, files, 1)
	return files[0]
}

func newUploadService(t *testing.T) UploadService {
	t.Helper()
	return NewUploadService(t.TempDir(), testMaxUploadSize, zap.NewNop())
}

func TestUploadService_Save(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, testMaxUploadSize, zap.NewNop())

	content := []byte("%PDF-1.4 fake report")
	header := fileHeader(t, "document", "final-report.pdf", "application/pdf", content)

	document, err := svc.Save(studentIdent(), header)
	require.NoError(t, err)

	assert.Equal(t, "final-report.pdf", document.OriginalName)
	assert.Equal(t, int64(len(content)), document.Size)
	assert.NotEqual(t, document.OriginalName, document.Filename)
	assert.Equal(t, ".pdf", filepath.Ext(document.Filename))

	stored, err := os.ReadFile(filepath.Join(dir, document.Filename))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestUploadService_Save_RequiresAuth(t *testing.T) {
	svc := newUploadService(t)
	header := fileHeader(t, "document", "report.pdf", "application/pdf", []byte("x"))

	_, err := svc.Save(nil, header)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestUploadService_Save_RejectsDisallowedExtension(t *testing.T) {
	svc := newUploadService(t)
	header := fileHeader(t, "document", "payload.exe", "application/octet-stream", []byte("MZ"))

	_, err := svc.Save(studentIdent(), header)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Message, "file type not allowed")
}

func TestUploadService_Save_RejectsMismatchedContentType(t *testing.T) {
	svc := newUploadService(t)
	header := fileHeader(t, "document", "report.pdf", "application/javascript", []byte("alert(1)"))

	_, err := svc.Save(studentIdent(), header)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestUploadService_Save_RejectsOversize(t *testing.T) {
	svc := NewUploadService(t.TempDir(), 16, zap.NewNop())
	header := fileHeader(t, "document", "report.pdf", "application/pdf",
		bytes.Repeat([]byte("a"), 64))

	_, err := svc.Save(studentIdent(), header)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestUploadService_SaveAll(t *testing.T) {
	svc := newUploadService(t)

	headers := []*multipart.FileHeader{
		fileHeader(t, "documents", "a.pdf", "application/pdf", []byte("a")),
		fileHeader(t, "documents", "b.png", "image/png", []byte("b")),
	}

	documents, err := svc.SaveAll(studentIdent(), headers)
	require.NoError(t, err)
	assert.Len(t, documents, 2)
}

func TestUploadService_SaveAll_BatchLimits(t *testing.T) {
	svc := newUploadService(t)

	_, err := svc.SaveAll(studentIdent(), nil)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	headers := make([]*multipart.FileHeader, MaxUploadBatch+1)
	for i := range headers {
		headers[i] = fileHeader(t, "documents", "a.pdf", "application/pdf", []byte("a"))
	}
	_, err = svc.SaveAll(studentIdent(), headers)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestUploadService_Delete(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, testMaxUploadSize, zap.NewNop())

	header := fileHeader(t, "document", "report.pdf", "application/pdf", []byte("x"))
	document, err := svc.Save(studentIdent(), header)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(studentIdent(), document.Filename))
	_, statErr := os.Stat(filepath.Join(dir, document.Filename))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting again is a not-found.
	err = svc.Delete(studentIdent(), document.Filename)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestUploadService_Delete_RejectsTraversal(t *testing.T) {
	svc := newUploadService(t)

	for _, name := range []string{"", "../secrets.txt", "a/b.pdf", ".."} {
		err := svc.Delete(studentIdent(), name)
		require.Error(t, err, "name %q should be rejected", name)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	}
}
