package config

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// LoadSSM overlays every parameter stored under prefix onto cfg. The last path segment of a
// parameter name is used as the key, so /portfolio/prod/ADMIN_PASSWORD sets ADMIN_PASSWORD.
func LoadSSM(ctx context.Context, cfg map[string]string, prefix string) error {
	if prefix == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	return overlaySSM(ctx, ssm.NewFromConfig(awsCfg), cfg, prefix)
}

func overlaySSM(ctx context.Context, client ssm.GetParametersByPathAPIClient, cfg map[string]string, prefix string) error {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("read ssm parameters under %s: %w", prefix, err)
		}
		for _, param := range page.Parameters {
			key := path.Base(aws.ToString(param.Name))
			if key == "" || key == "/" || key == "." {
				continue
			}
			cfg[key] = aws.ToString(param.Value)
			loaded++
		}
	}

	log.Info().Str("prefix", prefix).Int("parameters", loaded).Msg("Loaded configuration from SSM")
	return nil
}
