package domain

import "encoding/base64"

// MaxPhotoSize is the largest accepted profile photo.
const MaxPhotoSize = 3 * 1024 * 1024

type Photo struct {
	FileName    string
	ContentType string
	Data        []byte
}

// PreviewURL renders the photo as a data URL for display in place of the
// placeholder icon.
func (p *Photo) PreviewURL() string {
	if p == nil {
		return ""
	}
	return "data:" + p.ContentType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}
