package daemon

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"pareidolia/internal/executor"
	"pareidolia/internal/fileutil"
	"pareidolia/internal/history"
	"pareidolia/internal/ingest"
	"pareidolia/internal/logging"
	"pareidolia/internal/pyenv"
	"pareidolia/internal/scripts"
	"pareidolia/internal/store"
)

// ConvertVideo extracts frame images from a video into the given directory.
func (d *Daemon) ConvertVideo(ctx context.Context, videoPath, outputDir string) executor.Result {
	if _, err := os.Stat(videoPath); err != nil {
		return d.recordJob(ctx, history.KindExtract, scripts.ExtractFileName, nil,
			failureResult(fmt.Sprintf("video not found: %s", videoPath)))
	}
	script := scripts.ExtractPath(d.cfg.ScriptsDir())
	args := []string{videoPath, outputDir}
	result := d.runner.Execute(ctx, executor.Job{
		Script:  script,
		Args:    args,
		EnvPath: d.envPath(),
	})
	return d.recordJob(ctx, history.KindExtract, script, args, result)
}

// ConvertVideoIntoDataset copies a local video into the dataset's positives
// directory, extracts frames there, then removes the copy. The dataset is
// created on first use. The source file is left untouched.
func (d *Daemon) ConvertVideoIntoDataset(ctx context.Context, videoPath, datasetName string) executor.Result {
	if !d.store.DatasetExists(datasetName) {
		if _, err := d.store.CreateDataset(datasetName); err != nil {
			return failureResult(fmt.Sprintf("create dataset: %v", err))
		}
	}

	positives := d.store.PositivesDir(datasetName)
	staged := filepath.Join(positives, filepath.Base(videoPath))
	if err := fileutil.CopyFile(videoPath, staged); err != nil {
		return failureResult(fmt.Sprintf("stage video: %v", err))
	}

	result := d.ConvertVideo(ctx, staged, positives)
	if err := os.Remove(staged); err != nil {
		d.logger.Warn("failed to remove staged video",
			logging.String("path", staged),
			logging.Error(err))
	}
	return result
}

// Train runs the training script for a model against a dataset. The dataset's
// positives and negatives directories and the model's output directory must
// already exist; a missing folder short-circuits with a structured failure
// before any process is spawned. Epochs come from the model's settings record,
// falling back to the configured default.
func (d *Daemon) Train(ctx context.Context, modelName, datasetName string) executor.Result {
	positives := d.store.PositivesDir(datasetName)
	negatives := d.store.NegativesDir(datasetName)
	modelOut := d.store.ModelOutputDir(modelName)

	for _, dir := range []string{positives, negatives, modelOut} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return d.recordJob(ctx, history.KindTrain, scripts.TrainFileName, nil,
				failureResult(fmt.Sprintf("folder not found: %s", dir)))
		}
	}

	epochs := d.cfg.Training.DefaultEpochs
	if settings, ok, err := d.store.ReadSettings(modelName); err != nil {
		d.logger.Warn("failed to read model settings",
			logging.String(logging.FieldModel, modelName),
			logging.Error(err))
	} else if ok && settings.Epochs > 0 {
		epochs = settings.Epochs
	}

	script := scripts.TrainPath(d.cfg.ScriptsDir())
	args := []string{positives, negatives, modelOut, strconv.Itoa(epochs)}
	result := d.runner.Execute(ctx, executor.Job{
		Script:  script,
		Args:    args,
		EnvPath: d.envPath(),
	})
	return d.recordJob(ctx, history.KindTrain, script, args, result)
}

// ProvisionEnv guarantees the managed Python environment exists.
func (d *Daemon) ProvisionEnv(ctx context.Context) (pyenv.Result, error) {
	started := time.Now()
	result, err := d.prov.Ensure(ctx)

	entry := history.Job{
		Kind:     history.KindEnv,
		Script:   "venv",
		Success:  result.Success,
		Output:   result.Message,
		Started:  started.UTC(),
		Duration: time.Since(started).Seconds(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if !result.Reused {
		if _, recErr := d.history.Record(ctx, entry); recErr != nil {
			d.logger.Warn("failed to record env job", logging.Error(recErr))
		}
	}
	return result, err
}

// EnsureRoot creates the data root layout if absent.
func (d *Daemon) EnsureRoot() (string, error) {
	return d.store.EnsureRoot()
}

// CreateDataset creates a dataset project folder.
func (d *Daemon) CreateDataset(name string) (string, error) {
	return d.store.CreateDataset(name)
}

// CreateModel creates a model project folder with default settings.
func (d *Daemon) CreateModel(name string) (string, error) {
	return d.store.CreateModel(name)
}

// ListDatasets returns all dataset projects.
func (d *Daemon) ListDatasets() ([]store.Project, error) {
	return d.store.ListDatasets()
}

// ListModels returns all model projects.
func (d *Daemon) ListModels() ([]store.Project, error) {
	return d.store.ListModels()
}

// ListImages returns the images directly under a directory.
func (d *Daemon) ListImages(path string) []store.Image {
	return d.store.ListImages(path)
}

// Jobs returns the most recent job history entries.
func (d *Daemon) Jobs(ctx context.Context, limit int) ([]history.Job, error) {
	return d.history.List(ctx, limit)
}

// Job returns one history entry by id, or nil when unknown.
func (d *Daemon) Job(ctx context.Context, id string) (*history.Job, error) {
	return d.history.Get(ctx, id)
}

// NetworkAddress returns the URL the mobile app should pair with.
func (d *Daemon) NetworkAddress() (string, error) {
	ip, err := ingest.LocalIP()
	if err != nil {
		return "", err
	}
	bind := d.cfg.Paths.APIBind
	if d.running.Load() {
		bind = d.ingest.Addr()
	}
	_, port, err := net.SplitHostPort(bind)
	if err != nil {
		return "", fmt.Errorf("parse ingest address %q: %w", bind, err)
	}
	return fmt.Sprintf("http://%s:%s", ip, port), nil
}

func (d *Daemon) convertForIngest(ctx context.Context, videoPath, outputDir string) executor.Result {
	return d.ConvertVideo(ctx, videoPath, outputDir)
}

func (d *Daemon) envPath() string {
	if d.prov.Exists() {
		return d.prov.Path()
	}
	return ""
}

func (d *Daemon) recordJob(ctx context.Context, kind, script string, args []string, result executor.Result) executor.Result {
	started, err := time.Parse(time.RFC3339, result.Timestamp)
	if err != nil {
		started = time.Now().UTC()
	}
	entry := history.Job{
		Kind:     kind,
		Script:   script,
		Args:     args,
		Success:  result.Success,
		Output:   result.Output,
		Error:    result.Error,
		Started:  started,
		Duration: result.ExecutionTime,
	}
	if _, recErr := d.history.Record(ctx, entry); recErr != nil {
		d.logger.Warn("failed to record job",
			logging.String("kind", kind),
			logging.Error(recErr))
	}
	return result
}

func failureResult(message string) executor.Result {
	return executor.Result{
		Error:     message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
