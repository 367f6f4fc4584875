package sync

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// snapshotContentType is the MIME type stored with uploaded snapshots.
const snapshotContentType = "application/x-ndjson"

// TimestampPlaceholder in an S3 key is replaced with the snapshot time, so
// "jobly/{timestamp}.jsonl" keeps one object per sync instead of overwriting.
const (
	TimestampPlaceholder = "{timestamp}"
	timestampLayout      = "20060102T150405Z"
)

var _ Destination = (*S3Destination)(nil)

// S3Destination writes JSONL snapshots to an S3-compatible bucket.
type S3Destination struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Destination creates an S3 destination. If endpoint is non-empty,
// path-style addressing is enabled (for MinIO and similar).
func NewS3Destination(ctx context.Context, bucket, key, region, endpoint string) (*S3Destination, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(cfg, s3opts...)
	return &S3Destination{
		client: client,
		bucket: bucket,
		key:    key,
	}, nil
}

// String identifies the destination in logs.
func (d *S3Destination) String() string {
	return "s3://" + d.bucket + "/" + d.key
}

// objectKey expands the configured key for one snapshot.
func (d *S3Destination) objectKey(snap Snapshot) string {
	return strings.ReplaceAll(d.key, TimestampPlaceholder, snap.TakenAt.UTC().Format(timestampLayout))
}

// Write uploads the snapshot to S3. The company and job counts are stored as
// object metadata so a listing shows what each backup holds.
func (d *S3Destination) Write(ctx context.Context, snap Snapshot) error {
	key := d.objectKey(snap)
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(d.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(snap.Data),
		ContentType:   aws.String(snapshotContentType),
		ContentLength: aws.Int64(int64(len(snap.Data))),
		Metadata: map[string]string{
			"format-version": FormatVersion,
			"companies":      strconv.Itoa(snap.Companies),
			"jobs":           strconv.Itoa(snap.Jobs),
		},
	})
	if err != nil {
		return fmt.Errorf("s3 put object s3://%s/%s: %w", d.bucket, key, err)
	}
	return nil
}
