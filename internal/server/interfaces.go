package server

// Server defines the interface for the task server
type Server interface {
	Start() error
	Stop() error
	LoadConfig(filename string) error
	RunWithSignalHandling() error
}
