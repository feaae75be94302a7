package main

import (
	"context"
	"log/slog"

	"lanecollect/cmd/lanecollect/commands"
	"lanecollect/lib/telemetry"
)

func main() {
	ctx := context.Background()
	t, err := telemetry.SetupFromEnv(ctx, "lanecollect")
	if err != nil {
		slog.Warn("telemetry setup failed", "err", err)
	} else {
		defer t.Shutdown(ctx)
	}
	commands.ExecuteContext(ctx)
}
