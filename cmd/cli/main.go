package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/testematch/cli/internal/client/cli"
	"github.com/testematch/cli/internal/client/config"
	"github.com/testematch/cli/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
