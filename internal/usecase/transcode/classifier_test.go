package transcode_test

import (
	"testing"

	"github.com/ashabelnikov/file-pipeline/internal/usecase/transcode"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        transcode.Kind
	}{
		{name: "jpeg", contentType: "image/jpeg", want: transcode.Image},
		{name: "png", contentType: "image/png", want: transcode.Image},
		{name: "webp", contentType: "image/webp", want: transcode.Image},
		{name: "any image subtype", contentType: "image/x-custom", want: transcode.Image},
		{name: "pdf", contentType: "application/pdf", want: transcode.Document},
		{name: "plain text", contentType: "text/plain", want: transcode.Unsupported},
		{name: "json", contentType: "application/json", want: transcode.Unsupported},
		{name: "image without slash", contentType: "image", want: transcode.Unsupported},
		{name: "empty", contentType: "", want: transcode.Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transcode.Classify(tt.contentType); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}
