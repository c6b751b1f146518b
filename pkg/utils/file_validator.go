package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"room-inventory/pkg/config"
	apperrors "room-inventory/pkg/errors"
)

// ValidateFile checks size and sniffed content type against the rules of an upload context.
// The reader is rewound before returning.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("unknown upload context %q", contextName)
	}

	if rules.MaxSizeMB > 0 && fileHeader.Size > rules.MaxSizeMB*1024*1024 {
		return apperrors.NewInvalidInputError("file is %d KB, the limit is %d MB", fileHeader.Size/1024, rules.MaxSizeMB)
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read file header: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind file: %w", err)
	}

	mimeType := http.DetectContentType(buffer[:n])
	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return apperrors.NewInvalidInputError("file type %s is not allowed", mimeType)
	}
	return nil
}
