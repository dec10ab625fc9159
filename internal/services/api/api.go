package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harshit2704/capture-sync/env"
	"github.com/harshit2704/capture-sync/internal/services/api/controllers"
)

type API interface {
	Start() error
	Stop(ctx context.Context) error
}

const (
	PathImages     = "/api/v1/images"
	PathRetryImage = "/api/v1/images/:id/retry"
)

type api struct {
	restHost       string
	restController *controllers.RestController
	restServer     *gin.Engine
	httpServer     *http.Server
}

func New(restController *controllers.RestController) (API, error) {
	restHost, err := env.Get(env.RestHost)
	if err != nil {
		return nil, err
	}

	a := api{
		restHost:       restHost,
		restController: restController,
		restServer:     gin.Default(),
	}

	a.initRest()

	return &a, nil
}

func (a *api) initRest() {
	a.restServer.POST(PathImages, a.restController.PostCaptureImage)
	a.restServer.GET(PathImages, a.restController.GetImages)
	a.restServer.POST(PathRetryImage, a.restController.PostRetryImage)
}

func (a *api) Start() error {
	a.httpServer = &http.Server{
		Addr:    a.restHost,
		Handler: a.restServer,
	}

	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *api) Stop(ctx context.Context) error {
	if a.httpServer == nil {
		return nil
	}
	return a.httpServer.Shutdown(ctx)
}
