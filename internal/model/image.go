package model

import "fmt"

// Image is an opaque crop photo plus its declared media type. The pipeline
// treats it as read-only; callers own the bytes.
type Image struct {
	Data      []byte
	MediaType string
}

// Media types accepted by the vision providers
var supportedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Validate checks that the image is non-empty and carries a supported media type
func (i Image) Validate() error {
	if len(i.Data) == 0 {
		return fmt.Errorf("image is empty")
	}
	if !supportedMediaTypes[i.MediaType] {
		return fmt.Errorf("unsupported media type: %q (supported: jpeg, png, webp)", i.MediaType)
	}
	return nil
}
