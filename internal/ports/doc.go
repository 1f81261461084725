// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by the CLI
// and the health endpoint. Client ports are implemented by outbound adapters
// (the compose CLI, the Docker engine, the file system, the readiness prober)
// and called by the application layer.
package ports
