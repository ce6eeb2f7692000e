package main

import (
	"context"
	"os"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/spf13/cobra"
)

const serviceName string = "attribute-table"

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion, "json")

	err := newRootCommand(ctx).ExecuteContext(ctx)
	if err != nil {
		log.Error("command failed", "err", err.Error())
		cleanup()
		os.Exit(1)
	}

	cleanup()
}

func newRootCommand(ctx context.Context) *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Reshape asset exports into one row per object and one column per attribute",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPrintCommand(ctx),
		newServeCommand(ctx),
	)

	return root
}
