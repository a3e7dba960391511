package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/brewline/cafe-pos/internal/pkg/config"
	"github.com/brewline/cafe-pos/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:          "cafepos",
	Short:        "Cafe point-of-sale and back-office API",
	SilenceUsage: true,
}

// bootstrap loads configuration and initialises the process logger.
func bootstrap(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "cafe-pos",
		Env:     cfg.Env,
	})
	return cfg, log, nil
}
