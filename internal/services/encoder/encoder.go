// Package encoder builds multipart/form-data request bodies for upload
// requests. The body is assembled by hand rather than with mime/multipart:
// the upload endpoint expects exactly one part and the filename is passed
// through as an opaque string, without header escaping.
package encoder

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// Body is a fully encoded request body together with the Content-Type
// header value carrying its boundary token.
type Body struct {
	Content     []byte
	ContentType string
}

// Encode wraps payload into a single multipart/form-data part. The boundary
// token is derived from a fresh uuid, which makes collisions with payload
// bytes negligible.
func Encode(payload []byte, fieldName, fileName, subtype string) Body {
	boundary := fmt.Sprintf("Boundary-%s", uuid.NewString())

	var body bytes.Buffer
	body.Grow(len(payload) + 256)

	fmt.Fprintf(&body, "--%s\r\n", boundary)
	fmt.Fprintf(&body, "Content-Disposition: form-data; name=\"%s\"; filename=\"%s\"\r\n", fieldName, fileName)
	fmt.Fprintf(&body, "Content-Type: image/%s\r\n\r\n", subtype)
	body.Write(payload)
	fmt.Fprintf(&body, "\r\n--%s--\r\n", boundary)

	return Body{
		Content:     body.Bytes(),
		ContentType: fmt.Sprintf("multipart/form-data; boundary=%s", boundary),
	}
}
