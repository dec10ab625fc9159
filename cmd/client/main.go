package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/harshit2704/capture-sync/internal/services/api/controllers"
)

func main() {
	ctx := context.Background()

	if len(os.Args) < 3 {
		log.Fatal("usage: client <host> <image path>")
	}

	if err := captureImage(ctx, os.Args[1], os.Args[2]); err != nil {
		log.Fatal(err)
	}
}

func captureImage(ctx context.Context, host, filePath string) error {
	image, err := sendImage(ctx, host, filePath)
	if err != nil {
		return err
	}

	log.Printf("captured %s (%s)", image.ID, image.Status)

	return waitForUpload(ctx, host, image.ID)
}

func sendImage(ctx context.Context, host, filePath string) (*controllers.ImageResponse, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	var buffer bytes.Buffer
	body := multipart.NewWriter(&buffer)

	writer, err := body.CreateFormFile("image", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}

	_, err = io.Copy(writer, file)
	if err != nil {
		return nil, err
	}
	_ = body.Close()

	reqUrl := fmt.Sprintf("http://%s/api/v1/images", host)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqUrl, &buffer)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", body.FormDataContentType())
	req.Header.Set("Content-Length", strconv.Itoa(buffer.Len()))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var image controllers.ImageResponse
	if err = json.NewDecoder(resp.Body).Decode(&image); err != nil {
		return nil, err
	}

	return &image, nil
}

func waitForUpload(ctx context.Context, host, id string) error {
	reqUrl := fmt.Sprintf("http://%s/api/v1/images", host)

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
		if err != nil {
			return err
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var images []controllers.ImageResponse
		err = json.NewDecoder(resp.Body).Decode(&images)
		_ = resp.Body.Close()
		if err != nil {
			return err
		}

		for _, image := range images {
			if image.ID != id {
				continue
			}

			log.Printf("%s: %s %.0f%%", image.Name, image.Status, image.Progress*100)

			switch image.Status {
			case "uploaded":
				return nil
			case "failed":
				return fmt.Errorf("upload failed")
			}
		}

		time.Sleep(time.Second)
	}
}
