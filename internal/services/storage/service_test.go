package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/crafthub/crafthub-backend/internal/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeIdentity(contentType string, extension string) types.StorageFileIdentity {
	return types.StorageFileIdentity{
		ContentType: contentType,
		Extension:   extension,
	}
}

func makeFileHeader(t *testing.T, fileName string, contents []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)

	_, err = part.Write(contents)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestConvertUploadToFileIdentity(t *testing.T) {
	SetStagingFs(afero.NewMemMapFs(), "/staging")

	fileHeader := makeFileHeader(t, "faithful-32x.zip", []byte("pack bytes"))

	fileIdentity := ConvertUploadToFileIdentity(fileHeader)

	assert.Len(t, fileIdentity.UUID, 32)
	assert.Equal(t, "faithful-32x.zip", fileIdentity.FileName)
	assert.Equal(t, ".zip", fileIdentity.Extension)
	assert.Equal(t, int64(len("pack bytes")), fileIdentity.Size)
	assert.Contains(t, fileIdentity.StagedPath, fileIdentity.UUID)

	second := ConvertUploadToFileIdentity(fileHeader)
	assert.NotEqual(t, fileIdentity.UUID, second.UUID)
}

func TestConvertUploadStripsPathComponents(t *testing.T) {
	SetStagingFs(afero.NewMemMapFs(), "/staging")

	fileHeader := makeFileHeader(t, `..\evil\..\..\payload.jar`, []byte("x"))

	fileIdentity := ConvertUploadToFileIdentity(fileHeader)

	assert.Equal(t, "payload.jar", fileIdentity.FileName)
	assert.Equal(t, ".jar", fileIdentity.Extension)
}

func TestStageAndDiscardUpload(t *testing.T) {
	fs := afero.NewMemMapFs()
	SetStagingFs(fs, "/staging")

	fileHeader := makeFileHeader(t, "mod.jar", []byte("jar contents"))
	fileIdentity := ConvertUploadToFileIdentity(fileHeader)

	require.NoError(t, StageUpload(fileHeader, fileIdentity))

	staged, err := afero.ReadFile(fs, fileIdentity.StagedPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("jar contents"), staged)

	DiscardStaged(fileIdentity)

	exists, err := afero.Exists(fs, fileIdentity.StagedPath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStoredContentType(t *testing.T) {
	tests := []struct {
		name         string
		declaredType string
		extension    string
		want         string
	}{
		{"html declared type forced binary", "text/html", ".zip", "application/octet-stream"},
		{"html extension forced binary", "application/octet-stream", ".html", "application/octet-stream"},
		{"htm extension forced binary", "", ".htm", "application/octet-stream"},
		{"xhtml forced binary", "application/xhtml+xml", ".bin", "application/octet-stream"},
		{"html with charset forced binary", "text/html; charset=utf-8", ".dat", "application/octet-stream"},
		{"zip keeps archive type", "application/zip", ".zip", "application/zip"},
		{"unknown falls back to declared", "application/x-custom", ".xyzfile", "application/x-custom"},
		{"nothing known falls back to binary", "", ".xyzfile", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fi := makeIdentity(tt.declaredType, tt.extension)
			assert.Equal(t, tt.want, StoredContentType(fi))
		})
	}
}

func TestIsHTMLType(t *testing.T) {
	assert.True(t, IsHTMLType("text/html", ".zip"))
	assert.True(t, IsHTMLType("TEXT/HTML; charset=utf-8", ".zip"))
	assert.True(t, IsHTMLType("", ".HTML"))
	assert.False(t, IsHTMLType("application/zip", ".zip"))
	assert.False(t, IsHTMLType("", ""))
}

func TestSizeString(t *testing.T) {
	assert.Equal(t, "0.00 MB", SizeString(0))
	assert.Equal(t, "1.00 MB", SizeString(1024*1024))
	assert.Equal(t, "2.50 MB", SizeString(2*1024*1024+512*1024))
}

func TestDownloadFileName(t *testing.T) {
	assert.Equal(t, "Faithful_32x.zip", DownloadFileName("Faithful 32x", ".zip"))
	assert.Equal(t, "OptiFine_HD_U", DownloadFileName("OptiFine HD-U", ""))
	assert.Equal(t, "download.jar", DownloadFileName("", ".jar"))
	assert.Equal(t, "__.zip", DownloadFileName("世界", ".zip"))
}
