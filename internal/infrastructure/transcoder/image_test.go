package transcoder_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ashabelnikov/file-pipeline/internal/infrastructure/transcoder"
)

func jpegFixture(t *testing.T, width, height int) []byte {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 120, G: 80, B: 40, A: 255})

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if format != "webp" {
		t.Fatalf("result format = %q, want webp", format)
	}

	return cfg.Width, cfg.Height
}

func TestImageTranscoderCapsWidth(t *testing.T) {
	tc := transcoder.NewImage(1200, 80)

	res, err := tc.Transcode(context.Background(), jpegFixture(t, 3000, 1500))
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}

	if res.ContentType != "image/webp" || res.Ext != ".webp" || res.Kind != "images" {
		t.Errorf("result descriptor = %q %q %q", res.ContentType, res.Ext, res.Kind)
	}

	w, h := decodeSize(t, res.Data)
	if w != 1200 {
		t.Errorf("width = %d, want 1200", w)
	}
	if h != 600 {
		t.Errorf("height = %d, want 600 (aspect preserved)", h)
	}
}

func TestImageTranscoderKeepsSmallImages(t *testing.T) {
	tc := transcoder.NewImage(1200, 80)

	res, err := tc.Transcode(context.Background(), jpegFixture(t, 640, 480))
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}

	w, h := decodeSize(t, res.Data)
	if w != 640 || h != 480 {
		t.Errorf("size = %dx%d, want 640x480 unscaled", w, h)
	}
}

func TestImageTranscoderRejectsGarbage(t *testing.T) {
	tc := transcoder.NewImage(1200, 80)

	_, err := tc.Transcode(context.Background(), []byte("not an image at all"))
	if err == nil {
		t.Fatal("expected a decode error")
	}
}
