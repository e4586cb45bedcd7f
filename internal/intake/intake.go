package intake

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "go-coin-analyzer/internal/errors"
)

// UploadedImage holds one uploaded image for the duration of a request.
// It is never written to disk or persisted anywhere.
type UploadedImage struct {
	Data     []byte
	MIMEType string
	Size     int64
}

// FieldName is the multipart form field the client must use
const FieldName = "image"

// FromRequest extracts the single image field from a multipart request and
// enforces the upload constraints: field present, declared type image/*,
// size at most maxBytes.
func FromRequest(r *http.Request, maxBytes int64) (*UploadedImage, error) {
	file, header, err := r.FormFile(FieldName)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, apperrors.NewMissingInputError("no image file provided", err)
		}
		// MaxBytesReader trips during form parsing for oversized bodies
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apperrors.NewTooLargeError(
				fmt.Sprintf("image exceeds the %d byte limit", maxBytes), err)
		}
		return nil, apperrors.NewMissingInputError("invalid multipart form", err)
	}
	defer file.Close()

	if header.Size > maxBytes {
		return nil, apperrors.NewTooLargeError(
			fmt.Sprintf("image is %d bytes, limit is %d", header.Size, maxBytes), nil)
	}

	// Read one byte past the cap so an understated header size still fails
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, apperrors.NewMissingInputError("failed to read image data", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, apperrors.NewTooLargeError(
			fmt.Sprintf("image exceeds the %d byte limit", maxBytes), nil)
	}
	if len(data) == 0 {
		return nil, apperrors.NewMissingInputError("image file is empty", nil)
	}

	mimeType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, apperrors.NewUnsupportedTypeError(
			fmt.Sprintf("unsupported content type %q, only images are accepted", mimeType), nil)
	}

	return &UploadedImage{
		Data:     data,
		MIMEType: mimeType,
		Size:     int64(len(data)),
	}, nil
}
