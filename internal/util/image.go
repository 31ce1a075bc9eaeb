package util

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

// LoadImage reads an image file for the pipeline. The media type is sniffed
// from the content, not trusted from the extension; the pipeline core itself
// never touches the filesystem.
func LoadImage(path string) (model.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Image{}, fmt.Errorf("read image: %w", err)
	}

	mediaType := http.DetectContentType(data)
	// DetectContentType may append parameters (e.g. "; charset=...")
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}

	img := model.Image{Data: data, MediaType: mediaType}
	if err := img.Validate(); err != nil {
		return model.Image{}, fmt.Errorf("%s: %w", path, err)
	}

	return img, nil
}
