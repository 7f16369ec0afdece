package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Start requests the daemon to start its background services.
func (c *Client) Start() (*StartResponse, error) {
	var resp StartResponse
	if err := c.client.Call("Pareidolia.Start", StartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to stop its background services.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Pareidolia.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Pareidolia.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DatasetList returns all dataset projects.
func (c *Client) DatasetList() (*DatasetListResponse, error) {
	var resp DatasetListResponse
	if err := c.client.Call("Pareidolia.DatasetList", DatasetListRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DatasetCreate creates a dataset project folder.
func (c *Client) DatasetCreate(name string) (*DatasetCreateResponse, error) {
	var resp DatasetCreateResponse
	req := DatasetCreateRequest{Name: name}
	if err := c.client.Call("Pareidolia.DatasetCreate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ModelList returns all model projects.
func (c *Client) ModelList() (*ModelListResponse, error) {
	var resp ModelListResponse
	if err := c.client.Call("Pareidolia.ModelList", ModelListRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ModelCreate creates a model project folder.
func (c *Client) ModelCreate(name string) (*ModelCreateResponse, error) {
	var resp ModelCreateResponse
	req := ModelCreateRequest{Name: name}
	if err := c.client.Call("Pareidolia.ModelCreate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ImageList returns the images directly under a directory.
func (c *Client) ImageList(path string) (*ImageListResponse, error) {
	var resp ImageListResponse
	req := ImageListRequest{Path: path}
	if err := c.client.Call("Pareidolia.ImageList", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VideoConvert extracts frames from a local video into a dataset.
func (c *Client) VideoConvert(videoPath, datasetName string) (*VideoConvertResponse, error) {
	var resp VideoConvertResponse
	req := VideoConvertRequest{VideoPath: videoPath, DatasetName: datasetName}
	if err := c.client.Call("Pareidolia.VideoConvert", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Train runs the training script for a model against a dataset.
func (c *Client) Train(modelName, datasetName string) (*TrainResponse, error) {
	var resp TrainResponse
	req := TrainRequest{ModelName: modelName, DatasetName: datasetName}
	if err := c.client.Call("Pareidolia.Train", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EnvProvision guarantees the managed Python environment exists.
func (c *Client) EnvProvision() (*EnvProvisionResponse, error) {
	var resp EnvProvisionResponse
	if err := c.client.Call("Pareidolia.EnvProvision", EnvProvisionRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NetworkAddress returns the URL the mobile app should pair with.
func (c *Client) NetworkAddress() (*NetworkAddressResponse, error) {
	var resp NetworkAddressResponse
	if err := c.client.Call("Pareidolia.NetworkAddress", NetworkAddressRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// JobList returns the most recent job history entries.
func (c *Client) JobList(limit int) (*JobListResponse, error) {
	var resp JobListResponse
	req := JobListRequest{Limit: limit}
	if err := c.client.Call("Pareidolia.JobList", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// JobDescribe returns one job history entry by id.
func (c *Client) JobDescribe(id string) (*JobDescribeResponse, error) {
	var resp JobDescribeResponse
	req := JobDescribeRequest{ID: id}
	if err := c.client.Call("Pareidolia.JobDescribe", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
