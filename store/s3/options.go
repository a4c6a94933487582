package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/c2fo/fixture"
)

// DefaultRegion is used when neither the options nor the environment name a region.
const DefaultRegion = "us-east-1"

// Options holds s3-specific options.
type Options struct {
	AccessKeyID     string `json:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty"`
	Region          string `json:"region,omitempty"`
	Endpoint        string `json:"endpoint,omitempty"`
	ForcePathStyle  bool   `json:"forcePathStyle,omitempty"`
	// Debug routes SDK request and retry logs to the store's logger.
	Debug bool `json:"debug,omitempty"`
}

// FromEndpoint returns Options pointing at a derived service endpoint.
func FromEndpoint(ep fixture.ServiceEndpoint) Options {
	return Options{
		AccessKeyID:     ep.Credentials.AccessKeyID,
		SecretAccessKey: ep.Credentials.SecretAccessKey,
		Region:          ep.Region,
		Endpoint:        ep.URL(),
		ForcePathStyle:  ep.PathStyle,
	}
}

// getClient setup S3 client
func getClient(ctx context.Context, opt Options, logger zerolog.Logger) (Client, error) {
	// setup default config
	awsConfig, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	// return client instance
	return s3.NewFromConfig(awsConfig, func(opts *s3.Options) {
		if opt.Region != "" {
			opts.Region = opt.Region
		} else if opts.Region == "" {
			opts.Region = DefaultRegion
		}

		// synthetic host:port endpoints are not DNS-resolvable virtual-hosted domains
		opts.UsePathStyle = opt.ForcePathStyle

		// use specific endpoint, otherwise, will use aws "default endpoint resolver" based on region
		if opt.Endpoint != "" {
			opts.BaseEndpoint = aws.String(opt.Endpoint)
		}

		// emulators don't all understand the flexible checksum trailers
		opts.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		opts.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired

		if opt.AccessKeyID != "" && opt.SecretAccessKey != "" {
			opts.Credentials = credentials.NewStaticCredentialsProvider(
				opt.AccessKeyID,
				opt.SecretAccessKey,
				"",
			)
		}

		if opt.Debug {
			opts.Logger = newS3Logger(logger)
			opts.ClientLogMode = aws.LogRetries | aws.LogRequest | aws.LogResponse
		}
	}), nil
}
