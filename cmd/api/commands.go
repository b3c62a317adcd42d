package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	appRepos "github.com/Atharvasurya/punjab-alumni-sih/internal/app/repositories"
	appServices "github.com/Atharvasurya/punjab-alumni-sih/internal/app/services"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/bootstrap"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/server"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "alumni-portal",
		Short:         "Alumni portal API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", bootstrap.DefaultConfigPath, "path to the YAML config file")

	root.AddCommand(newServeCmd(&configPath), newExportCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func runServe(configPath string) error {
	srv, err := server.NewServer(configPath)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}
	return srv.Run()
}

func newExportCmd(configPath *string) *cobra.Command {
	var (
		exportType string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write alumni or students as CSV without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}
			database, err := bootstrap.SetupDatabase(context.Background(), cfg, lgr)
			if err != nil {
				return err
			}
			defer database.Close()

			users, err := appServices.ExportUsers(appRepos.NewRepositories(database).Users, exportType)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := appServices.WriteCSV(&buf, users); err != nil {
				return err
			}

			if out == "" {
				out = appServices.ExportFilename(exportType, time.Now())
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			lgr.Info().Str("file", out).Int("rows", len(users)).Msg("Export written")
			return nil
		},
	}
	cmd.Flags().StringVar(&exportType, "type", appServices.ExportAlumni, "alumni or students")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout (default <type>_export_<date>.csv)")
	return cmd
}
