package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"pareidolia/internal/daemon"
	"pareidolia/internal/logging"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Pareidolia", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Start(_ StartRequest, resp *StartResponse) error {
	s.log().Debug("daemon start requested")
	if err := s.daemon.Start(s.ctx); err != nil {
		resp.Started = false
		resp.Message = err.Error()
		return nil
	}
	resp.Started = true
	resp.Message = "daemon started"
	s.log().Info("daemon started via IPC",
		logging.String(logging.FieldEventType, "daemon_start"))
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.log().Debug("daemon stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	s.log().Info("daemon stopped via IPC",
		logging.String(logging.FieldEventType, "daemon_stop"))
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.DataRoot = status.DataRoot
	resp.IngestAddr = status.IngestAddr
	resp.EnvReady = status.EnvReady
	resp.LockPath = status.LockFilePath
	resp.HistoryDBPath = status.HistoryDBPath
	resp.Jobs = JobStats(status.Jobs)
	if len(status.Dependencies) > 0 {
		resp.Dependencies = make([]DependencyStatus, 0, len(status.Dependencies))
		for _, dep := range status.Dependencies {
			resp.Dependencies = append(resp.Dependencies, DependencyStatus{
				Name:        dep.Name,
				Command:     dep.Command,
				Description: dep.Description,
				Optional:    dep.Optional,
				Available:   dep.Available,
				Detail:      dep.Detail,
			})
		}
	}
	return nil
}

func (s *service) DatasetList(_ DatasetListRequest, resp *DatasetListResponse) error {
	datasets, err := s.daemon.ListDatasets()
	if err != nil {
		return err
	}
	resp.Datasets = datasets
	return nil
}

func (s *service) DatasetCreate(req DatasetCreateRequest, resp *DatasetCreateResponse) error {
	path, err := s.daemon.CreateDataset(req.Name)
	if err != nil {
		return err
	}
	resp.Path = path
	s.log().Info("dataset created via IPC",
		logging.String(logging.FieldDataset, req.Name),
		logging.String(logging.FieldEventType, "dataset_create"))
	return nil
}

func (s *service) ModelList(_ ModelListRequest, resp *ModelListResponse) error {
	models, err := s.daemon.ListModels()
	if err != nil {
		return err
	}
	resp.Models = models
	return nil
}

func (s *service) ModelCreate(req ModelCreateRequest, resp *ModelCreateResponse) error {
	path, err := s.daemon.CreateModel(req.Name)
	if err != nil {
		return err
	}
	resp.Path = path
	s.log().Info("model created via IPC",
		logging.String(logging.FieldModel, req.Name),
		logging.String(logging.FieldEventType, "model_create"))
	return nil
}

func (s *service) ImageList(req ImageListRequest, resp *ImageListResponse) error {
	resp.Images = s.daemon.ListImages(req.Path)
	return nil
}

func (s *service) VideoConvert(req VideoConvertRequest, resp *VideoConvertResponse) error {
	s.log().Debug("video conversion requested",
		logging.String(logging.FieldDataset, req.DatasetName))
	resp.Result = s.daemon.ConvertVideoIntoDataset(s.ctx, req.VideoPath, req.DatasetName)
	return nil
}

func (s *service) Train(req TrainRequest, resp *TrainResponse) error {
	s.log().Debug("training requested",
		logging.String(logging.FieldModel, req.ModelName),
		logging.String(logging.FieldDataset, req.DatasetName))
	resp.Result = s.daemon.Train(s.ctx, req.ModelName, req.DatasetName)
	return nil
}

func (s *service) EnvProvision(_ EnvProvisionRequest, resp *EnvProvisionResponse) error {
	result, err := s.daemon.ProvisionEnv(s.ctx)
	resp.Success = result.Success
	resp.Reused = result.Reused
	resp.Path = result.Path
	resp.Interpreter = result.Interpreter
	resp.Message = result.Message
	if err != nil {
		resp.Error = err.Error()
	}
	return nil
}

func (s *service) NetworkAddress(_ NetworkAddressRequest, resp *NetworkAddressResponse) error {
	addr, err := s.daemon.NetworkAddress()
	if err != nil {
		return err
	}
	resp.Address = addr
	return nil
}

func (s *service) JobList(req JobListRequest, resp *JobListResponse) error {
	jobs, err := s.daemon.Jobs(s.ctx, req.Limit)
	if err != nil {
		return err
	}
	resp.Jobs = jobs
	return nil
}

func (s *service) JobDescribe(req JobDescribeRequest, resp *JobDescribeResponse) error {
	if req.ID == "" {
		return errors.New("job describe requires an id")
	}
	job, err := s.daemon.Job(s.ctx, req.ID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job %q not found", req.ID)
	}
	resp.Job = *job
	return nil
}
