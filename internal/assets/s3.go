package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"storyshare/internal/retry"
	"storyshare/internal/story"
)

// S3API is the subset of the S3 client used by S3Assets.
type S3API interface {
	manager.DownloadAPIClient
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Options configures an S3 asset source.
type S3Options struct {
	Bucket          string
	Prefix          string // prepended to every reference
	Region          string
	Endpoint        string // custom endpoint for S3-compatible stores; enables path-style addressing
	AccessKeyID     string // optional; the default credential chain is used when empty
	SecretAccessKey string
	Retry           retry.Config
}

// S3Assets downloads images from an S3 bucket.
// Objects are stored at <prefix><ref>.
type S3Assets struct {
	client     S3API
	downloader *manager.Downloader
	bucket     string
	prefix     string
	retry      retry.Config
	logger     story.Logger
}

// NewS3Assets builds an S3 client from opts and the default AWS config chain.
func NewS3Assets(ctx context.Context, opts S3Options, logger story.Logger) (*S3Assets, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 assets require a bucket")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3AssetsWithClient(client, opts, logger), nil
}

// NewS3AssetsWithClient creates an S3 asset source around an existing client.
func NewS3AssetsWithClient(client S3API, opts S3Options, logger story.Logger) *S3Assets {
	return &S3Assets{
		client: client,
		downloader: manager.NewDownloader(client, func(d *manager.Downloader) {
			d.Concurrency = 1
		}),
		bucket: opts.Bucket,
		prefix: opts.Prefix,
		retry:  opts.Retry,
		logger: logger,
	}
}

func (a *S3Assets) key(ref string) string {
	return a.prefix + path.Clean("/" + ref)[1:]
}

// Get downloads the object for ref and writes it to w.
// Missing objects fail immediately; other errors are retried with backoff.
func (a *S3Assets) Get(ctx context.Context, ref string, w io.Writer) error {
	key := a.key(ref)

	var data []byte
	err := retry.Do(ctx, a.logger, "s3 get "+key, func() error {
		buf := manager.NewWriteAtBuffer(nil)
		_, err := a.downloader.Download(ctx, buf, &s3.GetObjectInput{
			Bucket: aws.String(a.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			if isNotFound(err) {
				return retry.Permanent(fmt.Errorf("%w: s3://%s/%s", ErrAssetNotFound, a.bucket, key))
			}
			return err
		}
		data = buf.Bytes()
		return nil
	}, a.retry)
	if err != nil {
		return fmt.Errorf("downloading asset %q: %w", ref, err)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write asset: %w", err)
	}
	return nil
}

// ValidateSetup checks that the bucket exists and is reachable.
func (a *S3Assets) ValidateSetup(ctx context.Context) error {
	if _, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)}); err != nil {
		return fmt.Errorf("s3 bucket %q not accessible: %w", a.bucket, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noKey) || errors.As(err, &notFound)
}

var _ story.AssetSource = (*S3Assets)(nil)
