package server

// Server is the lifecycle shared by the document server process and each
// transport it runs: the HTTP document API and the gRPC health endpoint.
//
// RunServer blocks until the server stops; Shutdown drains in-flight
// requests before returning.
type Server interface {
	RunServer()
	Shutdown()
}

var (
	_ Server = (*server)(nil)
	_ Server = (*httpServer)(nil)
	_ Server = (*grpcServer)(nil)
)
