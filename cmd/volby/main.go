package main

import (
	"context"
	"volby-harvest/cmd/volby/commands"
	"volby-harvest/lib/util/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()
	commands.ExecuteContext(ctx)
}
