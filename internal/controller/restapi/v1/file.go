package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ashabelnikov/file-pipeline/internal/controller/restapi/v1/response"
	"github.com/ashabelnikov/file-pipeline/internal/controller/restapi/v1/validate"
	"github.com/ashabelnikov/file-pipeline/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

type uploadRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
}

type notifyRequest struct {
	Key string `json:"key"`
}

// @Summary  	Register upload
// @Description Issues a write-once upload URL and creates the PENDING status record
// @Tags 		files
// @Accept 		json
// @Produce 	json
// @Param 		request body uploadRequest true "Declared file attributes"
// @Success 	201 {object} dto.UploadTicket
// @Failure 	400 {object} response.Error "Wrong parameters"
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Unsupported type"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/uploads [post]
func (r *V1) registerUpload(ctx *fiber.Ctx) error {
	var req uploadRequest

	err := ctx.BodyParser(&req)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if !validate.AllowedContentTypes[req.FileType] {
		return errorResponse(ctx, http.StatusUnsupportedMediaType, "unsupported file type. Allowed: jpeg, png, pdf")
	}

	if req.FileSize <= 0 {
		return errorResponse(ctx, http.StatusBadRequest, "fileSize must be positive")
	}

	if req.FileSize > validate.MaxFileSize {
		return errorResponse(ctx, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file size cant be more than %d bytes", validate.MaxFileSize))
	}

	ticket, err := r.files.RegisterUpload(ctx.UserContext(), req.FileName, req.FileType, req.FileSize)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - registerUpload")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusCreated).JSON(ticket)
}

// @Summary 	Get file status record
// @Description Returns the lifecycle record for polling, without the store-internal expiry
// @Tags 		files
// @Produce 	json
// @Param 		id path string true "File ID"
// @Success 	200 {object} response.FileRecord
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Record not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/files/{id} [get]
func (r *V1) getFileRecord(ctx *fiber.Ctx) error {
	fileID := ctx.Params("id")
	if fileID == "" {
		return errorResponse(ctx, http.StatusBadRequest, "file id is required")
	}

	record, err := r.files.GetRecord(ctx.UserContext(), fileID)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "file record not found")
		}
		r.logger.Error(err, "restapi - v1 - getFileRecord")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).JSON(response.NewFileRecord(record))
}

// @Summary 	Get download URL
// @Description Issues a read-only URL for a derivative object
// @Tags 		files
// @Produce 	json
// @Param 		key query string true "Derivative object key"
// @Success 	200 {object} response.DownloadURL
// @Failure 	400 {object} response.Error "Missing key"
// @Failure 	403 {object} response.Error "Key outside the processed namespace"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/download [get]
func (r *V1) getDownloadURL(ctx *fiber.Ctx) error {
	key := ctx.Query("key")
	if key == "" {
		return errorResponse(ctx, http.StatusBadRequest, "file key is required")
	}

	url, err := r.files.DownloadURL(ctx.UserContext(), key)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidKey) {
			return errorResponse(ctx, http.StatusForbidden, "invalid file path")
		}
		r.logger.Error(err, "restapi - v1 - getDownloadURL")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).JSON(response.DownloadURL{DownloadURL: url})
}

// @Summary 	Confirm upload
// @Description Publishes a synthetic object-created notification, for stores without native bucket events
// @Tags 		files
// @Accept 		json
// @Param 		id path string true "File ID"
// @Param 		request body notifyRequest true "Uploaded object key"
// @Success 	202 "Accepted"
// @Failure 	400 {object} response.Error "Key does not match the file"
// @Failure 	404 {object} response.Error "Record not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/files/{id}/notify [post]
func (r *V1) notifyUploaded(ctx *fiber.Ctx) error {
	fileID := ctx.Params("id")
	if fileID == "" {
		return errorResponse(ctx, http.StatusBadRequest, "file id is required")
	}

	var req notifyRequest

	err := ctx.BodyParser(&req)
	if err != nil || req.Key == "" {
		return errorResponse(ctx, http.StatusBadRequest, "uploaded object key is required")
	}

	err = r.files.NotifyUploaded(ctx.UserContext(), fileID, req.Key)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidKey):
			return errorResponse(ctx, http.StatusBadRequest, "key does not match the file")
		case errors.Is(err, errs.ErrRecordNotFound):
			return errorResponse(ctx, http.StatusNotFound, "file record not found")
		default:
			r.logger.Error(err, "restapi - v1 - notifyUploaded")

			return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
		}
	}

	return ctx.SendStatus(http.StatusAccepted)
}
