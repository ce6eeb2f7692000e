package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/diwise/attribute-table/internal/pkg/infrastructure/router"
	"github.com/diwise/attribute-table/internal/pkg/presentation/api"
	"github.com/diwise/attribute-table/internal/pkg/presentation/api/auth"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx context.Context) *cobra.Command {
	flags := defaultFlags(ctx)

	var port, policies, layout, maxBody string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the attribute table transform over http",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.GetFromContext(ctx)

			handler, err := newAPIHandler(ctx, policies, layout, maxBody)
			if err != nil {
				return err
			}

			log.Info("starting to listen for connections", "port", port)

			err = http.ListenAndServe(":"+port, handler)
			if err != nil {
				return fmt.Errorf("failed to listen for connections: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", flags[servicePort], "port to listen on")
	cmd.Flags().StringVar(&policies, "policies", flags[policiesPath], "rego module with authorization policies (allow all if empty)")
	cmd.Flags().StringVar(&layout, "layout", flags[layoutPath], "yaml file with header replacements")
	cmd.Flags().StringVar(&maxBody, "max-body", flags[maxRequestBody], "maximum size of a request body")

	return cmd
}

func newAPIHandler(ctx context.Context, policiesFile, layoutFile, maxBody string) (http.Handler, error) {
	var limit datasize.ByteSize
	if err := limit.UnmarshalText([]byte(maxBody)); err != nil {
		return nil, fmt.Errorf("invalid max request body %q: %w", maxBody, err)
	}

	layout, err := loadLayout(layoutFile)
	if err != nil {
		return nil, err
	}

	policies, err := openPolicies(policiesFile)
	if err != nil {
		return nil, err
	}
	defer policies.Close()

	r := router.New(serviceName)

	err = api.RegisterHandlers(ctx, r, policies, api.Config{
		Layout:         layout,
		MaxRequestBody: limit,
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func openPolicies(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(bytes.NewBufferString(auth.AllowAll)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open opa policy file: %w", err)
	}

	return f, nil
}
