package main

import (
	"ao3search/cmd/ao3search/commands"
	"ao3search/lib/util/serviceutil"
	"context"
)

func main() {
	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()
	commands.ExecuteContext(ctx)
}
