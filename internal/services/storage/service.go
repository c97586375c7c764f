package storage

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/crafthub/crafthub-backend/internal/repositories"
	"github.com/crafthub/crafthub-backend/internal/types"
	"github.com/crafthub/crafthub-backend/internal/utils/config"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	binaryContentType = "application/octet-stream"
)

var (
	stagingFs  afero.Fs
	stagingDir string
)

func InitStorageService() {
	stagingFs = afero.NewOsFs()
	stagingDir = filepath.Join(config.DataDir, "temp")
	stagingFs.MkdirAll(stagingDir, 0755)
}

// SetStagingFs swaps the staging filesystem, used by tests to run on memmap.
func SetStagingFs(fs afero.Fs, dir string) {
	stagingFs = fs
	stagingDir = dir
	stagingFs.MkdirAll(stagingDir, 0755)
}

// ConvertUploadToFileIdentity derives the collision-resistant stored name for
// an upload: a random token prefixed to the original base name.
func ConvertUploadToFileIdentity(file *multipart.FileHeader) types.StorageFileIdentity {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")

	normalizedFileName := filepath.Base(strings.ReplaceAll(file.Filename, "\\", "/"))
	extension := filepath.Ext(normalizedFileName)
	newFileName := token + "_" + normalizedFileName

	return types.StorageFileIdentity{
		UUID:        token,
		FileName:    normalizedFileName,
		Extension:   extension,
		StagedPath:  filepath.Join(stagingDir, newFileName),
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
	}
}

// StageUpload copies the multipart part onto the staging filesystem so the
// object upload can re-read it with a known size.
func StageUpload(file *multipart.FileHeader, fileIdentity types.StorageFileIdentity) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("error opening uploaded file with error: %s", err.Error())
	}
	defer src.Close()

	if err := afero.WriteReader(stagingFs, fileIdentity.StagedPath, src); err != nil {
		return fmt.Errorf("error staging uploaded file with error: %s", err.Error())
	}

	return nil
}

// UploadContent pushes a staged upload into object storage and returns the
// public URL, the object key and the human readable size. The staged copy is
// removed on success.
func UploadContent(ctx context.Context, fileIdentity types.StorageFileIdentity) (string, string, string, error) {
	file, err := stagingFs.Open(fileIdentity.StagedPath)
	if err != nil {
		return "", "", "", fmt.Errorf("error opening staged file with error: %s", err.Error())
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", "", "", err
	}

	objectKey := "content/" + fileIdentity.UUID + "_" + fileIdentity.FileName

	objectURL, err := repositories.UploadContentFile(ctx, file, stat.Size(), objectKey, StoredContentType(fileIdentity))
	if err != nil {
		return "", "", "", err
	}

	_ = stagingFs.Remove(fileIdentity.StagedPath)

	return objectURL, objectKey, SizeString(stat.Size()), nil
}

// DiscardStaged drops a staged upload that will not be stored.
func DiscardStaged(fileIdentity types.StorageFileIdentity) {
	_ = stagingFs.Remove(fileIdentity.StagedPath)
}

// StoredContentType picks the content type persisted with the object.
// Uploaded HTML is stored as a generic binary type so a browser fetching the
// object later can never render it inline.
func StoredContentType(fileIdentity types.StorageFileIdentity) string {
	if IsHTMLType(fileIdentity.ContentType, fileIdentity.Extension) {
		return binaryContentType
	}

	if byExt := mime.TypeByExtension(fileIdentity.Extension); byExt != "" {
		return byExt
	}

	if fileIdentity.ContentType != "" {
		return fileIdentity.ContentType
	}

	return binaryContentType
}

func IsHTMLType(declaredType string, extension string) bool {
	mediaType := declaredType
	if parsed, _, err := mime.ParseMediaType(declaredType); err == nil {
		mediaType = parsed
	}

	switch strings.ToLower(mediaType) {
	case "text/html", "application/xhtml+xml":
		return true
	}

	switch strings.ToLower(extension) {
	case ".html", ".htm", ".xhtml":
		return true
	}

	return false
}

// SizeString renders a byte count the way the catalog stores it.
func SizeString(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

// DownloadFileName derives the attachment name offered to the browser from
// the item title and the stored file's extension.
func DownloadFileName(title string, extension string) string {
	var b strings.Builder
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	name := b.String()
	if name == "" {
		name = "download"
	}

	return name + extension
}
