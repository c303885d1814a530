package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
)

var ErrNotAnImage = errors.New("not an image")

type ImageProcessor struct {
	MaxSize  int64 // bytes (default: 5MB)
	MaxWidth int   // px, ảnh rộng hơn sẽ được resize trước khi upload
}

func NewImageProcessor(maxSize int64, maxWidth int) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	if maxWidth <= 0 {
		maxWidth = 1600
	}
	return &ImageProcessor{MaxSize: maxSize, MaxWidth: maxWidth}
}

// ValidateImage: chỉ nhận JPEG/PNG, throw err nếu file > max size.
// Trả về format đã detect ("jpeg" hoặc "png").
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image is empty")
	}
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	switch format {
	case "jpeg", "png":
		return format, nil
	default:
		return "", fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// Prepare validate ảnh rồi thu nhỏ về MaxWidth nếu cần.
// Ảnh đã đủ nhỏ được trả về nguyên bản, không re-encode.
func (p *ImageProcessor) Prepare(data []byte) ([]byte, string, error) {
	format, err := p.ValidateImage(data)
	if err != nil {
		return nil, "", err
	}
	contentType := "image/" + format

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("cannot read image config: %w", err)
	}
	if cfg.Width <= p.MaxWidth {
		return data, contentType, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("cannot decode image: %w", err)
	}
	resized := imaging.Resize(img, p.MaxWidth, 0, imaging.Lanczos)

	b := new(bytes.Buffer)
	switch format {
	case "png":
		err = png.Encode(b, resized)
	default:
		err = jpeg.Encode(b, resized, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		return nil, "", fmt.Errorf("cannot encode %s: %w", format, err)
	}
	return b.Bytes(), contentType, nil
}
