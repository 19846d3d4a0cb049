package transcoder

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	// Registers webp decoding for originals already uploaded as webp.
	_ "golang.org/x/image/webp"
)

const (
	imageKind        = "images"
	imageExt         = ".webp"
	imageContentType = "image/webp"
)

// ImageTranscoder re-encodes raster images as lossy web-optimized webp,
// capping the width while preserving aspect ratio.
type ImageTranscoder struct {
	maxWidth int
	quality  int
}

func NewImage(maxWidth, quality int) *ImageTranscoder {
	return &ImageTranscoder{
		maxWidth: maxWidth,
		quality:  quality,
	}
}

func (t *ImageTranscoder) Transcode(ctx context.Context, data []byte) (*dto.TranscodeResult, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ImageTranscoder - Transcode - imaging.Decode: %w", err)
	}

	// Already-small images pass through unscaled.
	if img.Bounds().Dx() > t.maxWidth {
		img = imaging.Resize(img, t.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer

	err = webp.Encode(&buf, img, &webp.Options{Quality: float32(t.quality)})
	if err != nil {
		return nil, fmt.Errorf("ImageTranscoder - Transcode - webp.Encode: %w", err)
	}

	return &dto.TranscodeResult{
		Data:        buf.Bytes(),
		ContentType: imageContentType,
		Kind:        imageKind,
		Ext:         imageExt,
	}, nil
}
