// Package ipc exposes the daemon over JSON-RPC Unix sockets and ships the
// matching client used by the CLI.
//
// It owns socket lifecycle management and the request/response DTOs for every
// daemon operation. Job-style methods (video conversion, training,
// environment provisioning) carry process failure inside the response body
// rather than as an RPC error, so clients always receive the structured
// result.
package ipc
