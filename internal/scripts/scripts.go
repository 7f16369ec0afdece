// Package scripts embeds the Python extraction and training scripts and
// materializes them under the application data root.
//
// The scripts are the opaque external collaborators of the system: the daemon
// only knows their positional-argument contracts (extraction takes a video
// path and an output directory; training takes positives, negatives, a model
// output directory, and an epoch count) and their exit-code semantics.
package scripts

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed extract_images.py
var extractScript []byte

//go:embed train_model.py
var trainScript []byte

const (
	// ExtractFileName is the frame extraction script name on disk.
	ExtractFileName = "extract_images.py"
	// TrainFileName is the model training script name on disk.
	TrainFileName = "train_model.py"
)

// ExtractPath returns the extraction script location under dir.
func ExtractPath(dir string) string {
	return filepath.Join(dir, ExtractFileName)
}

// TrainPath returns the training script location under dir.
func TrainPath(dir string) string {
	return filepath.Join(dir, TrainFileName)
}

// Materialize writes both scripts into dir, overwriting older copies so the
// on-disk scripts always match the running binary.
func Materialize(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create scripts directory: %w", err)
	}
	files := map[string][]byte{
		ExtractFileName: extractScript,
		TrainFileName:   trainScript,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("write script %s: %w", name, err)
		}
	}
	return nil
}
