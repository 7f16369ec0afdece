package services_test

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"pareidolia/internal/services"
)

func TestWrapTagsAndChains(t *testing.T) {
	underlying := os.ErrPermission
	err := services.Wrap(services.ErrFilesystem, "store", "create dataset", "mkdir failed", underlying)

	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatal("expected filesystem marker")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Fatal("expected underlying error in chain")
	}
	if !strings.Contains(err.Error(), "store: create dataset: mkdir failed") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "store", "", "", nil)
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected default filesystem marker, got %v", err)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.Wrap(services.ErrValidation, "ingest", "upload", "fileName is required", nil), http.StatusBadRequest},
		{services.Wrap(services.ErrNotFound, "ingest", "download", "model not found", nil), http.StatusNotFound},
		{services.Wrap(services.ErrFilesystem, "store", "create", "", os.ErrPermission), http.StatusInternalServerError},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := services.HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
