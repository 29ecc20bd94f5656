package images

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"foodapp/internal/apperr"
)

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, file io.Reader, _ string) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: c.folder})
	if err != nil {
		log.Println("[UPLOAD] [ERROR] cloudinary upload failed:", err)
		return "", apperr.Wrap(ErrUploadFailed, err)
	}
	if resp.Error.Message != "" {
		log.Println("[UPLOAD] [ERROR] cloudinary rejected upload:", resp.Error.Message)
		return "", apperr.Wrap(ErrUploadFailed, errors.New(resp.Error.Message))
	}
	log.Println("[UPLOAD] [INFO] cloudinary upload stored:", resp.PublicID)
	return resp.SecureURL, nil
}
