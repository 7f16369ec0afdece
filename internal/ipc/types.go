package ipc

import (
	"pareidolia/internal/executor"
	"pareidolia/internal/history"
	"pareidolia/internal/store"
)

// StartRequest triggers daemon startup.
type StartRequest struct{}

// StartResponse indicates whether the daemon was started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest stops the daemon's background services.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// DependencyStatus describes availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail"`
}

// JobStats summarizes the job history ledger.
type JobStats struct {
	Total     int64 `json:"total"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
}

// StatusResponse represents daemon runtime information.
type StatusResponse struct {
	Running       bool               `json:"running"`
	PID           int                `json:"pid"`
	DataRoot      string             `json:"data_root"`
	IngestAddr    string             `json:"ingest_addr"`
	EnvReady      bool               `json:"env_ready"`
	LockPath      string             `json:"lock_path"`
	HistoryDBPath string             `json:"history_db_path"`
	Dependencies  []DependencyStatus `json:"dependencies"`
	Jobs          JobStats           `json:"jobs"`
}

// Project mirrors the store's project listing entry for IPC callers.
type Project = store.Project

// Image mirrors the store's image listing entry for IPC callers.
type Image = store.Image

// JobResult is the executor's structured outcome carried over the wire.
type JobResult = executor.Result

// JobRecord is one job history entry carried over the wire.
type JobRecord = history.Job

// DatasetListRequest fetches all dataset projects.
type DatasetListRequest struct{}

// DatasetListResponse contains dataset projects.
type DatasetListResponse struct {
	Datasets []Project `json:"datasets"`
}

// DatasetCreateRequest creates a dataset project folder.
type DatasetCreateRequest struct {
	Name string `json:"name"`
}

// DatasetCreateResponse returns the created dataset root.
type DatasetCreateResponse struct {
	Path string `json:"path"`
}

// ModelListRequest fetches all model projects.
type ModelListRequest struct{}

// ModelListResponse contains model projects.
type ModelListResponse struct {
	Models []Project `json:"models"`
}

// ModelCreateRequest creates a model project folder.
type ModelCreateRequest struct {
	Name string `json:"name"`
}

// ModelCreateResponse returns the created model root.
type ModelCreateResponse struct {
	Path string `json:"path"`
}

// ImageListRequest lists the images directly under a directory.
type ImageListRequest struct {
	Path string `json:"path"`
}

// ImageListResponse contains image entries.
type ImageListResponse struct {
	Images []Image `json:"images"`
}

// VideoConvertRequest extracts frame images from a local video into a
// dataset's positives directory.
type VideoConvertRequest struct {
	VideoPath   string `json:"video_path"`
	DatasetName string `json:"dataset_name"`
}

// VideoConvertResponse carries the extraction job outcome.
type VideoConvertResponse struct {
	Result JobResult `json:"result"`
}

// TrainRequest runs the training script for a model against a dataset.
type TrainRequest struct {
	ModelName   string `json:"model_name"`
	DatasetName string `json:"dataset_name"`
}

// TrainResponse carries the training job outcome.
type TrainResponse struct {
	Result JobResult `json:"result"`
}

// EnvProvisionRequest guarantees the managed Python environment exists.
type EnvProvisionRequest struct{}

// EnvProvisionResponse reports the provisioned environment. Bootstrap
// failure surfaces in Error with Success=false, not as an RPC error.
type EnvProvisionResponse struct {
	Success     bool   `json:"success"`
	Reused      bool   `json:"reused"`
	Path        string `json:"path"`
	Interpreter string `json:"interpreter_path"`
	Message     string `json:"message"`
	Error       string `json:"error,omitempty"`
}

// NetworkAddressRequest fetches the pairing URL for the mobile app.
type NetworkAddressRequest struct{}

// NetworkAddressResponse contains the pairing URL.
type NetworkAddressResponse struct {
	Address string `json:"address"`
}

// JobListRequest fetches recent job history entries.
type JobListRequest struct {
	Limit int `json:"limit"`
}

// JobListResponse contains job history entries, newest first.
type JobListResponse struct {
	Jobs []JobRecord `json:"jobs"`
}

// JobDescribeRequest fetches a single job history entry by id.
type JobDescribeRequest struct {
	ID string `json:"id"`
}

// JobDescribeResponse contains a single job history entry.
type JobDescribeResponse struct {
	Job JobRecord `json:"job"`
}
