package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/activity-tracker-api/internal/errors"
	"github.com/yukikurage/activity-tracker-api/internal/utils"
)

const maxAvatarSize = 5 << 20

var (
	errUnsupportedImage = errors.New("unsupported image type")
	errImageTooLarge    = errors.New("image exceeds 5MB")
)

var allowedAvatarExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ProfileFiles stores profile pictures on local disk under dir.
type ProfileFiles struct {
	dir string
}

func NewProfileFiles(dir string) *ProfileFiles {
	return &ProfileFiles{dir: dir}
}

// Save writes an uploaded image under a fresh name and returns that name.
func (p *ProfileFiles) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxAvatarSize {
		return "", errImageTooLarge
	}
	if !allowedAvatarExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		return "", errUnsupportedImage
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := utils.GenerateUploadName(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(p.dir, name)); err != nil {
		return "", fmt.Errorf("failed to save profile picture: %w", err)
	}
	return name, nil
}

// Path resolves a stored file name. Names containing path elements are rejected.
func (p *ProfileFiles) Path(name string) (string, bool) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", false
	}
	return filepath.Join(p.dir, name), true
}

func respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errUnsupportedImage), errors.Is(err, errImageTooLarge):
		apierrors.BadRequest(c, err.Error())
	default:
		logRequestError(c, "profile picture upload failed", err)
		apierrors.InternalError(c, "Failed to save profile picture")
	}
}

// FileHandler serves uploaded profile pictures.
type FileHandler struct {
	files *ProfileFiles
}

func NewFileHandler(files *ProfileFiles) *FileHandler {
	return &FileHandler{files: files}
}

// GetProfilePicture streams a stored profile picture.
func (h *FileHandler) GetProfilePicture(c *gin.Context) {
	path, ok := h.files.Path(c.Param("filename"))
	if !ok {
		apierrors.NotFound(c, "File not found")
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		apierrors.NotFound(c, "File not found")
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.File(path)
}
