package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// LoadSSM merges every parameter stored under path in AWS Systems Manager into config.
// Parameter "/portfolio/prod/resend/api_key" under path "/portfolio/prod" becomes RESEND_API_KEY.
// Values already present in config (set in the environment) win.
func LoadSSM(ctx context.Context, config map[string]string, path string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading aws config: %w", err)
	}
	return loadParameters(ctx, ssm.NewFromConfig(awsCfg), config, path)
}

func loadParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, config map[string]string, path string) error {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("reading parameters under %s: %w", path, err)
		}

		for _, p := range page.Parameters {
			key := parameterKey(path, aws.ToString(p.Name))
			if key == "" {
				continue
			}
			if _, exists := config[key]; exists {
				continue
			}
			config[key] = aws.ToString(p.Value)
			loaded++
		}
	}

	log.Info().Str("path", path).Int("parameters", loaded).Msg("Loaded SSM parameters")
	return nil
}

func parameterKey(path, name string) string {
	rel := strings.TrimPrefix(name, strings.TrimSuffix(path, "/"))
	rel = strings.Trim(rel, "/")
	rel = strings.NewReplacer("/", "_", "-", "_", ".", "_").Replace(rel)
	return strings.ToUpper(rel)
}
