package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/intit/supplier-enrich/internal/dataset"
	"github.com/intit/supplier-enrich/internal/enrich"
	"github.com/intit/supplier-enrich/internal/session"
	"github.com/intit/supplier-enrich/internal/storage"
	"github.com/intit/supplier-enrich/pkg/zoominfo"
)

var (
	enrichCSV      string
	enrichUsername string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Run the full enrichment pipeline on a supplier CSV",
	Long: `Reads a supplier CSV, runs all enrichment stages against the ZoomInfo
API, and writes the result next to the input as "<name> - Enhanced.csv".

Progress is checkpointed to a JSON working file after every stage, so an
interrupted run can be inspected mid-flight.

Credentials resolve in order: --username plus prompted password, config file
or ENRICH_ZOOMINFO_* environment variables, then Secrets Manager when
zoominfo.secret_id is set.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		creds, err := resolveCredentials(ctx)
		if err != nil {
			return err
		}

		client := zoominfo.NewClient(
			zoominfo.WithBaseURL(cfg.ZoomInfo.BaseURL),
			zoominfo.WithRateLimit(cfg.ZoomInfo.RatePerSecond),
		)

		outPath, err := runPipeline(ctx, client, creds, enrichCSV)
		if err != nil {
			return err
		}

		zap.L().Info("enrichment complete", zap.String("output", outPath))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichCSV, "csv", "", "path to the supplier CSV (required)")
	enrichCmd.Flags().StringVar(&enrichUsername, "username", "", "ZoomInfo username (password is prompted)")
	_ = enrichCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(enrichCmd)
}

// runPipeline is the shared CSV-in, CSV-out flow used by both the CLI and
// the Lambda handler.
func runPipeline(ctx context.Context, client zoominfo.Client, creds session.Credentials, csvPath string) (string, error) {
	records, err := dataset.FromCSV(csvPath)
	if err != nil {
		return "", err
	}
	dataset.NormalizeWhitespace(records)
	zap.L().Info("loaded dataset", zap.String("csv", csvPath), zap.Int("records", len(records)))

	store := dataset.NewFileStore(dataset.JSONPath(csvPath))
	if err := store.Save(ctx, records); err != nil {
		return "", err
	}

	guard := session.NewGuard(creds, client.Authenticate)
	driver := enrich.NewDriver(client, guard, store)
	if _, err := driver.Run(ctx); err != nil {
		return "", err
	}

	final, err := store.Load(ctx)
	if err != nil {
		return "", err
	}

	outPath := dataset.EnhancedCSVPath(csvPath)
	if err := dataset.ToCSV(outPath, final); err != nil {
		return "", err
	}
	return outPath, nil
}

// resolveCredentials picks the provider login from the --username flag (with
// an interactive password prompt), then config/env, then Secrets Manager.
func resolveCredentials(ctx context.Context) (session.Credentials, error) {
	if enrichUsername != "" {
		fmt.Fprintf(os.Stderr, "Password for %s: ", enrichUsername)
		pw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return session.Credentials{}, eris.Wrap(err, "enrich: read password")
		}
		return session.Credentials{Username: enrichUsername, Password: string(pw)}, nil
	}

	if cfg.ZoomInfo.Username != "" && cfg.ZoomInfo.Password != "" {
		return session.Credentials{Username: cfg.ZoomInfo.Username, Password: cfg.ZoomInfo.Password}, nil
	}

	if cfg.ZoomInfo.SecretID != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return session.Credentials{}, eris.Wrap(err, "enrich: load aws config")
		}
		src := storage.NewSecretsSource(secretsmanager.NewFromConfig(awsCfg))
		return src.Credentials(ctx, cfg.ZoomInfo.SecretID)
	}

	return session.Credentials{}, eris.New("enrich: no credentials: pass --username, set ENRICH_ZOOMINFO_USERNAME/PASSWORD, or configure zoominfo.secret_id")
}
