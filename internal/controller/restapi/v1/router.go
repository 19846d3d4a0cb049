package v1

import (
	"github.com/ashabelnikov/file-pipeline/internal/usecase"
	"github.com/ashabelnikov/file-pipeline/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewFileRoutes(apiV1Group fiber.Router, files usecase.FileUseCase, l logger.Interface) {
	r := &V1{files: files, logger: l}

	{
		apiV1Group.Post("/uploads", r.registerUpload)
		apiV1Group.Post("/files/:id/notify", r.notifyUploaded)
		apiV1Group.Get("/files/:id", r.getFileRecord)
		apiV1Group.Get("/download", r.getDownloadURL)
	}
}
