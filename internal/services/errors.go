package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrValidation marks requests missing required fields or carrying
	// unusable values. Ingestion maps it to 400.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks references to models or artifacts that do not exist
	// on disk. Ingestion maps it to 404.
	ErrNotFound = errors.New("not found")
	// ErrFilesystem marks I/O failures during root, dataset, or model
	// creation. Ingestion maps it to 500.
	ErrFilesystem = errors.New("filesystem error")
	// ErrExternalTool marks interpreter or bootstrap invocations that could
	// not run at all; process failures inside the executor never surface as
	// errors.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later status classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// HTTPStatus maps a component error to the status code the ingestion endpoint
// should respond with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
