package main

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/intit/supplier-enrich/internal/config"
	"github.com/intit/supplier-enrich/internal/storage"
	"github.com/intit/supplier-enrich/pkg/zoominfo"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run as an S3-triggered Lambda handler",
	Long: `Starts the Lambda runtime. Each S3 event record whose key sits under the
raw prefix is downloaded, run through the enrichment pipeline, and the
enhanced CSV is uploaded under the enhanced prefix of the same bucket.
Credentials come from Secrets Manager (zoominfo.secret_id).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.ZoomInfo.SecretID == "" {
			return eris.New("lambda: zoominfo.secret_id must be configured")
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "lambda: load aws config")
		}

		h := &lambdaHandler{
			objects: storage.NewS3Store(s3.NewFromConfig(awsCfg)),
			secrets: storage.NewSecretsSource(secretsmanager.NewFromConfig(awsCfg)),
			client: zoominfo.NewClient(
				zoominfo.WithBaseURL(cfg.ZoomInfo.BaseURL),
				zoominfo.WithRateLimit(cfg.ZoomInfo.RatePerSecond),
			),
			s3cfg:    cfg.S3,
			secretID: cfg.ZoomInfo.SecretID,
		}

		lambda.Start(h.handle)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

type lambdaHandler struct {
	objects  storage.ObjectStore
	secrets  storage.CredentialSource
	client   zoominfo.Client
	s3cfg    config.S3Config
	secretID string
}

func (h *lambdaHandler) handle(ctx context.Context, event events.S3Event) error {
	for _, rec := range event.Records {
		bucket := rec.S3.Bucket.Name
		key, err := url.QueryUnescape(rec.S3.Object.Key)
		if err != nil {
			return eris.Wrapf(err, "lambda: unescape key %q", rec.S3.Object.Key)
		}

		if !strings.HasPrefix(key, h.s3cfg.RawPrefix) || !strings.HasSuffix(key, ".csv") {
			zap.L().Warn("skipping object outside raw prefix",
				zap.String("bucket", bucket),
				zap.String("key", key),
			)
			continue
		}

		if err := h.process(ctx, bucket, key); err != nil {
			return err
		}
	}
	return nil
}

func (h *lambdaHandler) process(ctx context.Context, bucket, key string) error {
	local := filepath.Join(h.s3cfg.TempDir, filepath.Base(key))
	if err := h.objects.Download(ctx, bucket, key, local); err != nil {
		return err
	}
	zap.L().Info("downloaded raw dataset",
		zap.String("bucket", bucket),
		zap.String("key", key),
	)

	creds, err := h.secrets.Credentials(ctx, h.secretID)
	if err != nil {
		return err
	}

	outPath, err := runPipeline(ctx, h.client, creds, local)
	if err != nil {
		return err
	}

	outKey := h.s3cfg.EnhancedPrefix + filepath.Base(outPath)
	if err := h.objects.Upload(ctx, outPath, bucket, outKey); err != nil {
		return err
	}
	zap.L().Info("uploaded enhanced dataset",
		zap.String("bucket", bucket),
		zap.String("key", outKey),
	)
	return nil
}
