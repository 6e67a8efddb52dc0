package main

import (
	"log/slog"

	"github.com/Veraticus/biblio/internal/config"
	"github.com/Veraticus/biblio/internal/predictor"
	"github.com/Veraticus/biblio/internal/stub"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func stubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local classification service for development",
		Long: `Serve POST /predict, POST /suggest and GET /health with a keyword scorer
so the other commands can run without the real service. The prediction
field name is configurable because deployed services answer with either
"category" or "cluster".`,
		RunE: runStub,
	}

	cmd.Flags().String("addr", "", "Listen address (default: stub.addr)")
	cmd.Flags().String("field", "", "Prediction field name: category or cluster (default: stub.response_field)")
	cmd.Flags().Bool("no-db", false, "Use the built-in catalog instead of the local database")
	_ = viper.BindPFlag(config.KeyStubAddr, cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag(config.KeyStubResponseField, cmd.Flags().Lookup("field"))

	return cmd
}

func runStub(cmd *cobra.Command, _ []string) error {
	noDB, _ := cmd.Flags().GetBool("no-db")
	ctx := cmd.Context()

	cfg := stub.Config{
		Addr:          viper.GetString(config.KeyStubAddr),
		ResponseField: predictor.CategoryField(viper.GetString(config.KeyStubResponseField)),
	}

	if !noDB {
		store, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		cfg.Catalog = store
	}

	server, err := stub.NewServer(cfg)
	if err != nil {
		return err
	}

	slog.Info("Starting development service", "addr", cfg.Addr, "field", cfg.ResponseField)
	return server.Run(ctx)
}
