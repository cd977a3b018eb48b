package service

import (
	"bytes"
	"strings"

	"github.com/disintegration/imaging"

	commonlog "media_gateway/server/common/log"
)

const (
	normalizeMaxDimension = 1920
	normalizeJPEGQuality  = 85
)

// NormalizeImage bounds an uploaded image to 1920px on both axes
// (preserving aspect ratio, never upscaling) and re-encodes it as JPEG at
// quality 85. Non-image payloads pass through untouched. Any decode or
// encode failure falls back to the original bytes: normalization is an
// optimization and must never abort an upload.
func NormalizeImage(data []byte, contentType string) []byte {
	if !strings.HasPrefix(contentType, "image/") {
		return data
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		commonlog.Warnf("image normalization skipped, decode failed: %v", err)
		return data
	}
	fitted := imaging.Fit(img, normalizeMaxDimension, normalizeMaxDimension, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(normalizeJPEGQuality)); err != nil {
		commonlog.Warnf("image normalization skipped, encode failed: %v", err)
		return data
	}
	return buf.Bytes()
}
