package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/admin-panel-kit/attachment-service/internal/configuration"
)

const remoteOpTimeout = 30 * time.Second

// RemoteStore persists blobs in an S3-compatible object-storage bucket and
// returns fully-qualified URLs as references. When a custom domain is
// configured it replaces the bucket's default hostname in every returned URL.
type RemoteStore struct {
	client       *minio.Client
	bucket       string
	endpoint     string
	customDomain string
}

func NewRemoteStore(cfg configuration.RemoteConfig) (*RemoteStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.AccessKeySecret, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object-storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), remoteOpTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Printf("Created bucket: %s", cfg.Bucket)
	}

	return &RemoteStore{
		client:       client,
		bucket:       cfg.Bucket,
		endpoint:     cfg.Endpoint,
		customDomain: cfg.CustomDomain,
	}, nil
}

func (r *RemoteStore) Put(ctx context.Context, content []byte, ext string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, remoteOpTimeout)
	defer cancel()

	object := objectName("files", ext)
	_, err := r.client.PutObject(ctx, r.bucket, object, bytes.NewReader(content),
		int64(len(content)), minio.PutObjectOptions{ContentType: ContentTypeFor(ext)})
	if err != nil {
		return "", fmt.Errorf("failed to upload to storage: %w", err)
	}

	return publicURL(r.bucket, r.endpoint, r.customDomain, object), nil
}

// Delete parses the trailing "files/<key>" segment out of the reference URL
// and removes that exact object. A reference that cannot be parsed is a hard
// error, not a silent no-op.
func (r *RemoteStore) Delete(ctx context.Context, reference string) error {
	object, err := ObjectKeyFromURL(reference)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, remoteOpTimeout)
	defer cancel()

	if err := r.client.RemoveObject(ctx, r.bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", object, err)
	}
	return nil
}

// publicURL builds the externally visible URL for an uploaded object. The
// scheme is always normalized to https; the custom domain, when set, stands
// in for "<bucket>.<endpoint>".
func publicURL(bucket, endpoint, customDomain, object string) string {
	host := bucket + "." + endpoint
	if customDomain != "" {
		host = customDomain
	}
	return "https://" + host + "/" + object
}

// ObjectKeyFromURL recovers the object key ("files/<key>.<ext>") from a
// stored remote reference.
func ObjectKeyFromURL(reference string) (string, error) {
	u, err := url.Parse(reference)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedReference, reference)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-1] == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedReference, reference)
	}
	return segments[len(segments)-2] + "/" + segments[len(segments)-1], nil
}

// ContentTypeFor maps a bare file extension (no dot) to a MIME type.
func ContentTypeFor(ext string) string {
	switch strings.ToLower(ext) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "pdf":
		return "application/pdf"
	case "mp4":
		return "video/mp4"
	case "mp3":
		return "audio/mpeg"
	case "txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
