package storage

import (
	"context"
	"fmt"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// DomainBinder makes sure the custom public hostname is aliased to the
// bucket before any URL using that hostname is issued.
type DomainBinder interface {
	EnsureBound(ctx context.Context) error
}

// OSSDomainBinder implements DomainBinder against the OSS bucket CNAME API.
// The check-then-add is not transactional; two concurrent callers may both
// observe "absent" and both add, which the service side tolerates.
type OSSDomainBinder struct {
	client *oss.Client
	bucket string
	domain string
}

func NewOSSDomainBinder(endpoint, accessKeyID, accessKeySecret, bucket, domain string) (*OSSDomainBinder, error) {
	client, err := oss.New("https://"+endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}
	return &OSSDomainBinder{client: client, bucket: bucket, domain: domain}, nil
}

func (b *OSSDomainBinder) EnsureBound(_ context.Context) error {
	result, err := b.client.ListBucketCname(b.bucket)
	if err != nil {
		return fmt.Errorf("failed to list bucket CNAME entries: %w", err)
	}
	for _, cname := range result.Cname {
		if cname.Domain == b.domain {
			return nil
		}
	}
	if err := b.client.PutBucketCname(b.bucket, b.domain); err != nil {
		return fmt.Errorf("failed to add bucket CNAME %q: %w", b.domain, err)
	}
	return nil
}
