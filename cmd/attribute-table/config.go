package main

import (
	"context"
	"fmt"
	"os"

	"github.com/diwise/attribute-table/internal/pkg/application/attributetable"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
)

type FlagType int
type FlagMap map[FlagType]string

const (
	inputSource FlagType = iota
	outputFormat
	layoutPath
	apiToken

	servicePort
	policiesPath
	maxRequestBody
)

// defaultFlags reads the flag defaults from the environment.
func defaultFlags(ctx context.Context) FlagMap {
	return FlagMap{
		inputSource:  env.GetVariableOrDefault(ctx, "ATTRIBUTE_TABLE_INPUT", "assets.json"),
		outputFormat: env.GetVariableOrDefault(ctx, "OUTPUT_FORMAT", "text"),
		layoutPath:   env.GetVariableOrDefault(ctx, "LAYOUT_PATH", ""),
		apiToken:     env.GetVariableOrDefault(ctx, "ASSETS_API_TOKEN", ""),

		servicePort:    env.GetVariableOrDefault(ctx, "SERVICE_PORT", "8080"),
		policiesPath:   env.GetVariableOrDefault(ctx, "POLICIES_PATH", ""),
		maxRequestBody: env.GetVariableOrDefault(ctx, "MAX_REQUEST_BODY", "10MB"),
	}
}

func loadLayout(path string) (attributetable.Config, error) {
	if path == "" {
		return attributetable.DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return attributetable.Config{}, fmt.Errorf("failed to open layout: %w", err)
	}
	defer f.Close()

	cfg, err := attributetable.LoadConfiguration(f)
	if err != nil {
		return attributetable.Config{}, fmt.Errorf("failed to load layout from %s: %w", path, err)
	}

	return *cfg, nil
}
