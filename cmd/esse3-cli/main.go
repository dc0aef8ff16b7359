package main

import (
	"esse3report/cmd/esse3-cli/commands"
	"esse3report/lib/serviceutil"
	"esse3report/lib/telemetry"
	"os"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "esse3-cli")
	if err == nil {
		defer tel.Shutdown(ctx)
	} else if !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}

	commands.ExecuteContext(ctx)
}
