package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/zurustar/tasklogger/internal/server"
)

func main() {
	var configFile = flag.String("config", "config.yaml", "Configuration file path")
	flag.Parse()

	// Resolve the path up front so a failed load names the file that was actually read
	path, err := filepath.Abs(*configFile)
	if err != nil {
		log.Fatalf("Invalid configuration path %s: %v", *configFile, err)
	}

	// Create server instance
	taskServer := server.NewTaskServer()

	// Load configuration
	if err := taskServer.LoadConfig(path); err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", path, err)
	}
	log.Printf("Loaded configuration from %s", path)

	// Run server with signal handling
	if err := taskServer.RunWithSignalHandling(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
