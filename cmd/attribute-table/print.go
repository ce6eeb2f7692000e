package main

import (
	"context"
	"fmt"

	"github.com/diwise/attribute-table/internal/pkg/application/attributetable"
	"github.com/diwise/attribute-table/internal/pkg/presentation/render"
	"github.com/diwise/attribute-table/pkg/assets"
	"github.com/spf13/cobra"
)

func newPrintCommand(ctx context.Context) *cobra.Command {
	flags := defaultFlags(ctx)

	var input, format, layout, token string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Read an asset export from a file or URL and print the attribute table",
		RunE: func(cmd *cobra.Command, args []string) error {
			write, err := render.ForFormat(format)
			if err != nil {
				return err
			}

			cfg, err := loadLayout(layout)
			if err != nil {
				return err
			}

			options := []assets.LoadOption{}
			if token != "" {
				options = append(options, assets.Header("Authorization", "Bearer "+token))
			}

			export, err := assets.Load(cmd.Context(), input, options...)
			if err != nil {
				return err
			}

			result, err := attributetable.Run(cmd.Context(), export, cfg)
			if err != nil {
				return fmt.Errorf("failed to build attribute table: %w", err)
			}

			return write(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", flags[inputSource], "path or http(s) url of the asset export")
	cmd.Flags().StringVarP(&format, "format", "f", flags[outputFormat], "output format (text, csv or json)")
	cmd.Flags().StringVar(&layout, "layout", flags[layoutPath], "yaml file with header replacements")
	cmd.Flags().StringVar(&token, "token", flags[apiToken], "bearer token used when fetching the export over http")

	return cmd
}
