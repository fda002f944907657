package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// listLimit caps how many archived objects a single List call fetches.
const listLimit = 200

// S3Sink ships submissions to S3-compatible object storage (AWS S3 or
// Cloudflare R2). Objects are keyed <prefix>/<kind>/<id>.json.
type S3Sink struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Sink creates a sink against the given endpoint. endpoint may be
// empty for plain AWS S3; set it for R2 or other compatible stores.
func NewS3Sink(ctx context.Context, endpoint, region, accessKey, secretKey, bucket, prefix string) (*S3Sink, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

func (s *S3Sink) key(kind, id string) string {
	if s.prefix == "" {
		return kind + "/" + id + ".json"
	}
	return s.prefix + "/" + kind + "/" + id + ".json"
}

// Save uploads the submission document.
func (s *S3Sink) Save(ctx context.Context, sub Submission) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(sub.Kind, sub.ID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	return nil
}

// List fetches stored submissions, newest first, capped at listLimit.
func (s *S3Sink) List(ctx context.Context, kind string) ([]Submission, error) {
	prefix := s.prefix
	if kind != "" {
		prefix = strings.TrimPrefix(prefix+"/"+kind, "/")
	}

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(listLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 list objects: %w", err)
	}

	var subs []Submission
	for _, obj := range out.Contents {
		get, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    obj.Key,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 get object %s: %w", aws.ToString(obj.Key), err)
		}
		data, readErr := io.ReadAll(get.Body)
		get.Body.Close()
		if readErr != nil {
			return nil, readErr
		}

		var sub Submission
		if jsonErr := json.Unmarshal(data, &sub); jsonErr != nil {
			continue
		}
		subs = append(subs, sub)
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].SubmittedAt.After(subs[j].SubmittedAt)
	})
	return subs, nil
}
