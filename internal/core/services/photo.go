package services

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/sm8ta/station_control_console/internal/core/domain"
)

var (
	ErrPhotoRejected = errors.New("photo rejected")
	ErrPhotoNotImage = fmt.Errorf("%w: not an image", ErrPhotoRejected)
	ErrPhotoTooLarge = fmt.Errorf("%w: larger than %d bytes", ErrPhotoRejected, domain.MaxPhotoSize)
	ErrTooManyPhotos = fmt.Errorf("%w: only one file is allowed", ErrPhotoRejected)
	ErrNoPhoto       = fmt.Errorf("%w: no file selected", ErrPhotoRejected)
)

// imageTypes are the MIME types accepted for a profile photo.
var imageTypes = []string{
	"image/png",
	"image/gif",
	"image/jpeg",
	"image/svg+xml",
	"image/webp",
	"image/avif",
	"image/heic",
	"image/heif",
}

// PhotoUpload is one file picked or dropped by the user.
type PhotoUpload struct {
	FileName string
	Data     []byte
}

// AcceptPhoto turns a selection into a profile photo. The content type is
// sniffed from the bytes; whatever the client claimed is ignored.
func AcceptPhoto(files []PhotoUpload) (*domain.Photo, error) {
	switch {
	case len(files) == 0:
		return nil, ErrNoPhoto
	case len(files) > 1:
		return nil, ErrTooManyPhotos
	}

	photo := &domain.Photo{
		FileName:    files[0].FileName,
		ContentType: mimetype.Detect(files[0].Data).String(),
		Data:        files[0].Data,
	}
	if err := CheckPhoto(photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// CheckPhoto enforces the type and size limits.
func CheckPhoto(p *domain.Photo) error {
	if len(p.Data) > domain.MaxPhotoSize {
		return ErrPhotoTooLarge
	}
	mtype := mimetype.Detect(p.Data)
	for _, t := range imageTypes {
		if mtype.Is(t) {
			return nil
		}
	}
	return ErrPhotoNotImage
}

func photoRule(err error) string {
	switch {
	case errors.Is(err, ErrPhotoTooLarge):
		return "max_size"
	case errors.Is(err, ErrTooManyPhotos):
		return "max_files"
	case errors.Is(err, ErrNoPhoto):
		return "required"
	default:
		return "image"
	}
}

func PhotoMessage(err error) string {
	switch {
	case errors.Is(err, ErrPhotoTooLarge):
		return "A foto de perfil não deve exceder 3MB."
	case errors.Is(err, ErrTooManyPhotos):
		return "Permitido apenas um arquivo."
	case errors.Is(err, ErrNoPhoto):
		return "Nenhum arquivo selecionado."
	default:
		return "Permitido apenas arquivos de imagem."
	}
}
