package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParameterStore struct {
	pages []*ssm.GetParametersByPathOutput
	calls int
	err   error
}

func (f *fakeParameterStore) GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func param(name, value string) ssmtypes.Parameter {
	return ssmtypes.Parameter{Name: aws.String(name), Value: aws.String(value)}
}

func TestLoadParameters(t *testing.T) {
	store := &fakeParameterStore{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []ssmtypes.Parameter{
				param("/portfolio/prod/resend/api_key", "re_123"),
				param("/portfolio/prod/ADMIN_EMAIL", "ssm@example.com"),
			},
			NextToken: aws.String("page-2"),
		},
		{
			Parameters: []ssmtypes.Parameter{param("/portfolio/prod/s3-bucket", "media")},
		},
	}}

	c := map[string]string{"ADMIN_EMAIL": "env@example.com"}
	require.NoError(t, loadParameters(context.Background(), store, c, "/portfolio/prod/"))

	assert.Equal(t, 2, store.calls)
	assert.Equal(t, "re_123", c["RESEND_API_KEY"])
	assert.Equal(t, "media", c["S3_BUCKET"])
	assert.Equal(t, "env@example.com", c["ADMIN_EMAIL"], "environment values take precedence")
}

func TestLoadParametersError(t *testing.T) {
	store := &fakeParameterStore{err: errors.New("access denied")}
	err := loadParameters(context.Background(), store, map[string]string{}, "/portfolio")
	assert.ErrorContains(t, err, "access denied")
}

func TestParameterKey(t *testing.T) {
	assert.Equal(t, "DATABASE_URL", parameterKey("/app", "/app/database.url"))
	assert.Equal(t, "TWILIO_FROM_NUMBER", parameterKey("/app/", "/app/twilio/from-number"))
}
