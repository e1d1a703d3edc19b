package catalog

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source opens one static table by file name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// FSSource reads tables from a file system, usually os.DirFS(dir).
type FSSource struct {
	FS   fs.FS
	Name string
}

func (s FSSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return s.FS.Open(name)
}

func (s FSSource) String() string {
	if s.Name == "" {
		return "fs"
	}
	return "fs:" + s.Name
}

// HTTPSource fetches <BaseURL>/<name> once per table. The request is bounded
// by ctx; a nil Client means http.DefaultClient.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("bad catalog base url: %w", err)
	}
	u.Path = path.Join(u.Path, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %s", name, resp.Status)
	}
	return resp.Body, nil
}

func (s HTTPSource) String() string { return "http:" + s.BaseURL }

// S3API is the part of the S3 client the catalog needs.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads s3://Bucket/Prefix/name.
type S3Source struct {
	Client S3API
	Bucket string
	Prefix string
}

// NewS3Source builds a client from the default AWS credential chain.
// A non-empty endpoint switches to path-style addressing for MinIO.
func NewS3Source(ctx context.Context, bucket, prefix, region, endpoint string) (*S3Source, error) {
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Source{Client: client, Bucket: bucket, Prefix: prefix}, nil
}

func (s S3Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := path.Join(s.Prefix, name)
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.Bucket, key, err)
	}
	return out.Body, nil
}

func (s S3Source) String() string { return "s3:" + s.Bucket + "/" + s.Prefix }
