package v1

import (
	"github.com/ashabelnikov/file-pipeline/internal/usecase"
	"github.com/ashabelnikov/file-pipeline/pkg/logger"
)

type V1 struct {
	files  usecase.FileUseCase
	logger logger.Interface
}
