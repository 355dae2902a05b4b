package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog/log"
)

// FromConfig builds the store selected by BLOB_PROVIDER. An unset provider yields Disabled.
func FromConfig(ctx context.Context, c map[string]string) (Store, error) {
	provider := strings.ToLower(config.GetString(c, "BLOB_PROVIDER", ""))
	publicBase := config.GetString(c, "BLOB_PUBLIC_BASE_URL", "")

	switch provider {
	case "":
		log.Warn().Msg("BLOB_PROVIDER not set, media uploads are disabled")
		return Disabled{}, nil
	case "s3":
		return NewS3Store(ctx, S3Config{
			Bucket:        config.GetString(c, "S3_BUCKET", ""),
			Region:        config.GetString(c, "S3_REGION", ""),
			Endpoint:      config.GetString(c, "S3_ENDPOINT", ""),
			PublicBaseURL: publicBase,
		})
	case "gcs":
		return NewGCSStore(ctx, GCSConfig{
			Bucket:          config.GetString(c, "GCS_BUCKET", ""),
			CredentialsFile: config.GetString(c, "GCS_CREDENTIALS_FILE", ""),
			PublicBaseURL:   publicBase,
			MakePublic:      config.GetBool(c, "GCS_PUBLIC_ACL", false),
		})
	default:
		return nil, errs.NewConfigError("BLOB_PROVIDER", fmt.Errorf("unknown provider %q", provider))
	}
}
