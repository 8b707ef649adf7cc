package main

import (
	"log"

	"glue/cmd"
	"glue/pkg/logging"

	"go.uber.org/zap"
)

func main() {
	err := cmd.Execute()

	// The command installs its own logger once the configuration is known; errors raised
	// before that point are reported through a default one.
	logger := logging.Logger
	if logger == nil {
		var newErr error
		logger, newErr = logging.New(logging.Options{})
		if newErr != nil {
			log.Fatalf("Failed to initialize logger: %v", newErr)
		}
	}
	defer logging.Sync(logger)

	if err != nil {
		logger.Fatal("glue execution failed", zap.Error(err))
	}
}
