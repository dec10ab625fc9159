package encoder

import (
	"bytes"
	"crypto/rand"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeRoundTrip(t *testing.T) {
	payload := make([]byte, 4096)
	_, err := rand.Read(payload)
	require.NoError(t, err)

	body := Encode(payload, "image", "Image_1731072000.jpg", "jpeg")

	mediaType, params, err := mime.ParseMediaType(body.ContentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)
	require.True(t, strings.HasPrefix(params["boundary"], "Boundary-"))

	reader := multipart.NewReader(bytes.NewReader(body.Content), params["boundary"])

	part, err := reader.NextPart()
	require.NoError(t, err)
	require.Equal(t, "image", part.FormName())
	require.Equal(t, "Image_1731072000.jpg", part.FileName())
	require.Equal(t, "image/jpeg", part.Header.Get("Content-Type"))

	recovered, err := io.ReadAll(part)
	require.NoError(t, err)
	require.Equal(t, payload, recovered)

	_, err = reader.NextPart()
	require.ErrorIs(t, err, io.EOF)
}

func TestEncodeUniqueBoundaries(t *testing.T) {
	payload := []byte("payload")

	first := Encode(payload, "image", "a.jpg", "jpeg")
	second := Encode(payload, "image", "a.jpg", "jpeg")

	require.NotEqual(t, first.ContentType, second.ContentType)
}

func TestEncodeEmptyPayload(t *testing.T) {
	body := Encode(nil, "image", "empty.jpg", "jpeg")

	_, params, err := mime.ParseMediaType(body.ContentType)
	require.NoError(t, err)

	reader := multipart.NewReader(bytes.NewReader(body.Content), params["boundary"])

	part, err := reader.NextPart()
	require.NoError(t, err)

	recovered, err := io.ReadAll(part)
	require.NoError(t, err)
	require.Empty(t, recovered)
}
