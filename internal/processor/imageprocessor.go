// imageprocessor.go - Plant photo preprocessing before the vision model call.

package processor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agrisense/farm_assist_gemini/configs"
	"github.com/disintegration/imaging"
)

// PreprocessImage loads a photo, downsizes it to the configured maximum
// dimension and applies mild sharpening/contrast so leaf damage and insect
// detail survive JPEG re-encoding. Returns the encoded bytes and MIME type.
// When preprocessing is disabled or decoding fails, the original file is
// returned untouched.
func PreprocessImage(imagePath string) ([]byte, string, error) {
	if !configs.ENABLE_IMAGE_PREPROCESSING {
		return readOriginal(imagePath)
	}

	img, err := imaging.Open(imagePath, imaging.AutoOrientation(true))
	if err != nil {
		// Not a decodable image (or an unsupported format): pass through.
		return readOriginal(imagePath)
	}

	maxDim := configs.MAX_IMAGE_DIMENSION
	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	img = imaging.Sharpen(img, 0.5)
	img = imaging.AdjustContrast(img, 10)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, "", fmt.Errorf("failed to encode preprocessed image: %w", err)
	}

	return buf.Bytes(), "image/jpeg", nil
}

func readOriginal(imagePath string) ([]byte, string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image file: %w", err)
	}
	return data, DetectMIMEType(imagePath), nil
}

// DetectMIMEType maps a file extension to the MIME type sent to the model.
func DetectMIMEType(imagePath string) string {
	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
