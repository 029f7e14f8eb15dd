package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":    "9090",
		"BAD_INT": "nine",
		"SECURE":  "true",
		"ORIGINS": " https://a.dev, ,https://b.dev ",
		"BLANK":   "  ",
		"TIMEOUT": "15",
	}

	assert.Equal(t, "9090", GetString(cfg, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(cfg, "BLANK", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
	assert.Equal(t, 9090, GetInt(cfg, "PORT", 1))
	assert.Equal(t, 1, GetInt(cfg, "BAD_INT", 1))
	assert.True(t, GetBool(cfg, "SECURE", false))
	assert.False(t, GetBool(cfg, "MISSING", false))
	assert.Equal(t, 15*time.Second, GetSeconds(cfg, "TIMEOUT", 1))
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, GetStringSlice(cfg, "ORIGINS", nil))
	assert.Equal(t, []string{"*"}, GetStringSlice(cfg, "MISSING", []string{"*"}))
}

type fakeSSM struct {
	pages []*ssm.GetParametersByPathOutput
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func TestOverlaySSM(t *testing.T) {
	client := &fakeSSM{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []types.Parameter{{Name: aws.String("/portfolio/ADMIN_PASSWORD"), Value: aws.String("s3cret")}},
			NextToken:  aws.String("next"),
		},
		{
			Parameters: []types.Parameter{{Name: aws.String("/portfolio/SESSION_SECRET"), Value: aws.String("signing")}},
		},
	}}

	cfg := map[string]string{"ADMIN_PASSWORD": "from-env", "PORT": "8080"}
	require.NoError(t, overlaySSM(context.Background(), client, cfg, "/portfolio"))

	assert.Equal(t, "s3cret", cfg["ADMIN_PASSWORD"])
	assert.Equal(t, "signing", cfg["SESSION_SECRET"])
	assert.Equal(t, "8080", cfg["PORT"])
	assert.Equal(t, 2, client.calls)
}

func TestLoadSSMWithoutPrefixIsNoop(t *testing.T) {
	cfg := map[string]string{}
	require.NoError(t, LoadSSM(context.Background(), cfg, ""))
	assert.Empty(t, cfg)
}
