package services

import (
	"context"
	"io"

	"rentalsite/errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const RoomImageFolder = "rooms"

// ImageUploader tải ảnh phòng lên kho ảnh
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (url, publicID string, err error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, folder string) (string, string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", "", errors.NewAppError(errors.ErrCodeIOError, "Upload failed", err)
	}
	if resp.Error.Message != "" {
		return "", "", errors.NewAppError(errors.ErrCodeIOError, "Upload failed: "+resp.Error.Message, nil)
	}
	return resp.SecureURL, resp.PublicID, nil
}
