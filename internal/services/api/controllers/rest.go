package controllers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshit2704/capture-sync/internal/services/capture"
	"github.com/harshit2704/capture-sync/internal/services/repository"
	"github.com/harshit2704/capture-sync/internal/services/uploader"
)

type RestController struct {
	log      *zap.SugaredLogger
	repo     repository.Repository
	producer capture.Producer
	uploads  uploader.Uploader
}

func NewRestController(
	log *zap.SugaredLogger,
	repo repository.Repository,
	producer capture.Producer,
	uploads uploader.Uploader,
) *RestController {
	return &RestController{
		log:      log,
		repo:     repo,
		producer: producer,
		uploads:  uploads,
	}
}

type ImageResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Progress   float64   `json:"progress"`
	Attempts   int       `json:"attempts"`
	CapturedAt time.Time `json:"captured_at"`
}

func (c *RestController) PostCaptureImage(ctx *gin.Context) {
	mf, err := ctx.MultipartForm()
	if err != nil {
		c.log.With("err", err).Error("failed to open multiform")
		ctx.Status(http.StatusBadRequest)
		return
	}

	files, ok := mf.File["image"]
	if !ok {
		ctx.String(http.StatusBadRequest, "no image is provided in request")
		return
	}

	if len(files) != 1 {
		ctx.String(http.StatusBadRequest, "provided more than 1 image")
		return
	}

	file := files[0]

	pipe, err := file.Open()
	if err != nil {
		c.log.With("err", err).Error("failed to open image")
		ctx.Status(http.StatusInternalServerError)
		return
	}
	defer func() {
		_ = pipe.Close()
	}()

	payload, err := io.ReadAll(pipe)
	if err != nil {
		c.log.With("err", err).Error("failed to read image")
		ctx.Status(http.StatusInternalServerError)
		return
	}

	artifact, err := c.producer.Capture(ctx, payload, file.Filename)
	if err != nil {
		if errors.Is(err, capture.ErrPayloadTooLarge) {
			ctx.String(http.StatusRequestEntityTooLarge, "image is too large")
			return
		}
		c.log.With("err", err).Error("failed to capture image")
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ctx.JSON(http.StatusCreated, toImageResponse(artifact))
}

func (c *RestController) GetImages(ctx *gin.Context) {
	artifacts, err := c.repo.FindArtifacts(ctx)
	if err != nil {
		c.log.With("err", err).Error("failed to find images")
		ctx.Status(http.StatusInternalServerError)
		return
	}

	images := make([]ImageResponse, 0, len(artifacts))
	for _, artifact := range artifacts {
		images = append(images, toImageResponse(artifact))
	}

	ctx.JSON(http.StatusOK, images)
}

func (c *RestController) PostRetryImage(ctx *gin.Context) {
	id := ctx.Param("id")

	err := c.uploads.Retry(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			ctx.String(http.StatusNotFound, "image not found")
		case errors.Is(err, uploader.ErrNotFailed):
			ctx.String(http.StatusConflict, "upload is not failed")
		case errors.Is(err, uploader.ErrRetryLimit):
			ctx.String(http.StatusConflict, "retry limit reached")
		default:
			c.log.With("err", err).Error("failed to retry upload")
			ctx.Status(http.StatusInternalServerError)
		}
		return
	}

	ctx.Status(http.StatusAccepted)
}

func toImageResponse(artifact *repository.Artifact) ImageResponse {
	return ImageResponse{
		ID:         artifact.ID,
		Name:       artifact.Name,
		Status:     string(artifact.Status),
		Progress:   artifact.Progress,
		Attempts:   artifact.Attempts,
		CapturedAt: artifact.CreatedAt,
	}
}
