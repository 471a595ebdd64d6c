// Command helium queries the Helium blockchain API from the command line and
// can run a small health and metrics server for the client.
//
// Configuration comes from flags or HELIUM_* environment variables:
//
//	HELIUM_BASE_URL     API base URL (default https://api.helium.io/v1)
//	HELIUM_USER_AGENT   User-Agent sent with every request
//	HELIUM_REDIS_ADDR   optional Redis for the response cache and shared rate limits
//	HELIUM_LOG_LEVEL    debug, info, warn, error or disabled
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
