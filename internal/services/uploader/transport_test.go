package uploader_test

import (
	"context"
	"crypto/rand"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harshit2704/capture-sync/env"
	"github.com/harshit2704/capture-sync/internal/services/encoder"
	"github.com/harshit2704/capture-sync/internal/services/uploader"
)

func TestHTTPTransport(t *testing.T) {
	payload := make([]byte, 64*1024)
	_, err := rand.Read(payload)
	require.NoError(t, err)

	// written by the server goroutine, read back after Upload returns
	var serverLocker sync.Mutex
	var received []byte
	var fileName string
	var handlerErr error

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverLocker.Lock()
		defer serverLocker.Unlock()

		file, header, err := r.FormFile("image")
		if err != nil {
			handlerErr = err
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer func() {
			_ = file.Close()
		}()

		fileName = header.Filename
		received, handlerErr = io.ReadAll(file)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_ = os.Setenv(env.UploadEndpoint, server.URL)
	defer func() {
		_ = os.Unsetenv(env.UploadEndpoint)
	}()

	transport := uploader.NewHTTPTransport(server.Client())

	body := encoder.Encode(payload, "image", "Image_1.jpg", "jpeg")

	// the client writes the request body from its own goroutine
	var locker sync.Mutex
	var sentCounts []int64
	var totals []int64
	statusCode, err := transport.Upload(context.Background(), body, func(sent, total int64) {
		locker.Lock()
		defer locker.Unlock()
		sentCounts = append(sentCounts, sent)
		totals = append(totals, total)
	})
	require.NoError(t, err)
	locker.Lock()
	defer locker.Unlock()
	require.Equal(t, http.StatusOK, statusCode)

	serverLocker.Lock()
	require.NoError(t, handlerErr)
	require.Equal(t, payload, received)
	require.Equal(t, "Image_1.jpg", fileName)
	serverLocker.Unlock()

	require.NotEmpty(t, sentCounts)
	last := int64(0)
	for _, sent := range sentCounts {
		require.GreaterOrEqual(t, sent, last)
		last = sent
	}
	require.Equal(t, int64(len(body.Content)), last)
	for _, total := range totals {
		require.Equal(t, int64(len(body.Content)), total)
	}
}

func TestHTTPTransportConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_ = os.Setenv(env.UploadEndpoint, server.URL)
	defer func() {
		_ = os.Unsetenv(env.UploadEndpoint)
	}()

	transport := uploader.NewHTTPTransport(&http.Client{})

	body := encoder.Encode([]byte("jpeg bytes"), "image", "Image_1.jpg", "jpeg")

	_, err := transport.Upload(context.Background(), body, func(sent, total int64) {})
	require.Error(t, err)
}
