// Package images stores uploaded restaurant, menu and profile pictures and
// returns the URL they are served from.
package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"foodapp/internal/apperr"
)

const MaxImageSize = 5 << 20

var (
	ErrInvalidImage = apperr.New(apperr.Validation, "invalid_image", "invalid image")
	ErrUploadFailed = apperr.New(apperr.Upstream, "image_upload", "image upload failed")
)

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type Uploader interface {
	// Upload stores the image read from file. filename is only used for its
	// extension.
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
}

// ValidateHeader checks extension and size of a multipart upload before it is
// read.
func ValidateHeader(file *multipart.FileHeader) error {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return ErrInvalidImage.WithMessage("image file extension is required")
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return ErrInvalidImage.WithMessage(fmt.Sprintf("unsupported image type: %s", extension))
	}
	if file.Size > MaxImageSize {
		return ErrInvalidImage.WithMessage("image file too large (max 5MB)")
	}
	return nil
}

// UploadFile validates and uploads a multipart file.
func UploadFile(ctx context.Context, u Uploader, file *multipart.FileHeader) (string, error) {
	if err := ValidateHeader(file); err != nil {
		return "", err
	}
	in, err := file.Open()
	if err != nil {
		return "", apperr.Wrap(ErrInvalidImage, err)
	}
	defer in.Close()

	return u.Upload(ctx, in, file.Filename)
}

// DecodeDataURI splits a "data:image/png;base64,..." string into its bytes
// and a filename carrying the matching extension.
func DecodeDataURI(uri string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(strings.TrimSpace(uri), ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, "", ErrInvalidImage.WithMessage("image must be a base64 data URI")
	}
	mimeType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")

	var extension string
	for ext, mt := range allowedExtensions {
		if mt == mimeType && (extension == "" || ext < extension) {
			extension = ext
		}
	}
	if extension == "" {
		return nil, "", ErrInvalidImage.WithMessage(fmt.Sprintf("unsupported image type: %s", mimeType))
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrInvalidImage.WithMessage("image data is not valid base64")
	}
	if len(data) > MaxImageSize {
		return nil, "", ErrInvalidImage.WithMessage("image file too large (max 5MB)")
	}
	return data, "upload" + extension, nil
}

// Remover is implemented by uploaders that can delete what they stored.
type Remover interface {
	Delete(url string) error
}

// Discard deletes a replaced image when the uploader supports it. Failures
// only get logged; the new image is already in place.
func Discard(u Uploader, url string) {
	r, ok := u.(Remover)
	if !ok || url == "" {
		return
	}
	if err := r.Delete(url); err != nil {
		log.Printf("[UPLOAD] [ERROR] could not delete replaced image %s: %v", url, err)
	}
}
