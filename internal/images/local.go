package images

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodapp/internal/apperr"
)

// Local keeps uploads on disk under dir; the router serves dir at urlPrefix.
type Local struct {
	dir       string
	urlPrefix string
}

func NewLocal(dir, urlPrefix string) *Local {
	return &Local{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (l *Local) Dir() string { return l.dir }

func (l *Local) Upload(_ context.Context, file io.Reader, filename string) (string, error) {
	extension := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[extension]; !ok {
		return "", ErrInvalidImage.WithMessage(fmt.Sprintf("unsupported image type: %s", extension))
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		log.Printf("[UPLOAD] [ERROR] failed to create directory %s: %v", l.dir, err)
		return "", apperr.Wrap(ErrUploadFailed, err)
	}

	name := primitive.NewObjectID().Hex() + extension
	fullPath := filepath.Join(l.dir, name)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] [ERROR] failed to create file %s: %v", fullPath, err)
		return "", apperr.Wrap(ErrUploadFailed, err)
	}
	defer out.Close()

	written, err := io.Copy(out, io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		log.Printf("[UPLOAD] [ERROR] failed to save file %s: %v", fullPath, err)
		_ = os.Remove(fullPath)
		return "", apperr.Wrap(ErrUploadFailed, err)
	}
	if written > MaxImageSize {
		_ = os.Remove(fullPath)
		return "", ErrInvalidImage.WithMessage("image file too large (max 5MB)")
	}

	log.Printf("[UPLOAD] [INFO] stored %s (%d bytes)", fullPath, written)
	return l.urlPrefix + "/" + name, nil
}

// Delete removes an upload previously returned by Upload. URLs that do not
// point into the upload directory are refused.
func (l *Local) Delete(url string) error {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil
	}
	if !strings.HasPrefix(trimmed, l.urlPrefix+"/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", url)
	}

	name := path.Clean("/" + strings.TrimPrefix(trimmed, l.urlPrefix+"/"))
	cleanBase := filepath.Clean(l.dir)
	cleanTarget := filepath.Clean(filepath.Join(cleanBase, filepath.FromSlash(name)))
	if cleanTarget == cleanBase || !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside upload dir: %s", url)
	}

	if err := os.Remove(cleanTarget); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
