package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"

	"github.com/harshit2704/capture-sync/deps"
	"github.com/harshit2704/capture-sync/internal/services/api"
	controllers2 "github.com/harshit2704/capture-sync/internal/services/api/controllers"
	"github.com/harshit2704/capture-sync/internal/services/cache"
	"github.com/harshit2704/capture-sync/internal/services/capture"
	"github.com/harshit2704/capture-sync/internal/services/filestorage"
	"github.com/harshit2704/capture-sync/internal/services/repository"
	"github.com/harshit2704/capture-sync/internal/services/uploader"
)

func main() {
	container := dig.New()

	container.Provide(deps.NewDB)
	container.Provide(deps.NewZapLogger)
	container.Provide(deps.NewHTTPClient)
	container.Provide(repository.New)
	container.Provide(filestorage.NewFSStorage)
	container.Provide(cache.NewMapCache)
	container.Provide(uploader.NewHTTPTransport)
	container.Provide(uploader.NewLogNotifier)
	container.Provide(uploader.New)
	container.Provide(capture.New)
	container.Provide(controllers2.NewRestController)
	container.Provide(api.New)

	var listener api.API
	var uploads uploader.Uploader
	err := container.Invoke(func(a api.API, u uploader.Uploader) {
		listener = a
		uploads = u
	})
	if err != nil {
		log.Fatal(err)
	}

	// resubmit everything that never reached the uploaded status
	if err = uploads.Resume(context.Background()); err != nil {
		log.Fatal(err)
	}

	errs := make(chan error, 1)
	go func() {
		errs <- listener.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-errs:
		log.Fatal(err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = listener.Stop(ctx); err != nil {
		log.Fatal(err)
	}
}
