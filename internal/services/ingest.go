package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/admin-panel-kit/attachment-service/internal/configuration"
	"github.com/admin-panel-kit/attachment-service/internal/models"
	"github.com/admin-panel-kit/attachment-service/internal/records"
	"github.com/admin-panel-kit/attachment-service/internal/storage"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrReplaceRemote rejects the content-replace operation when remote
	// storage is active: the existing remote blob cannot be replaced in place.
	ErrReplaceRemote = errors.New("content replace is not supported for remote storage")

	// ErrRemoteNotConfigured surfaces when a record carries a remote-shaped
	// reference but no remote backend was configured for this process.
	ErrRemoteNotConfigured = errors.New("remote storage is not configured")
)

// RemoveFailure reports a per-id backend delete failure during batch removal.
type RemoveFailure struct {
	ID  string
	Err error
}

// Service orchestrates fingerprinting, blob storage, domain binding and
// metadata persistence into the ingest, removal and replace operations.
type Service struct {
	store    records.Store
	local    storage.BlobStore
	remote   storage.BlobStore
	binder   storage.DomainBinder
	resolver *URLResolver
	events   *EventPublisher
	mode     string
}

func NewService(
	store records.Store,
	local storage.BlobStore,
	remote storage.BlobStore,
	binder storage.DomainBinder,
	resolver *URLResolver,
	events *EventPublisher,
	mode string,
) *Service {
	return &Service{
		store:    store,
		local:    local,
		remote:   remote,
		binder:   binder,
		resolver: resolver,
		events:   events,
		mode:     mode,
	}
}

func (s *Service) activeBackend() storage.BlobStore {
	if s.mode == configuration.ModeRemote {
		return s.remote
	}
	return s.local
}

// extensionOf derives the bare extension ("jpg", no dot) from a display name.
func extensionOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Ingest stores uploaded content and returns its file record. A second
// upload of identical content under the same name returns the existing
// record without touching the backend.
func (s *Service) Ingest(ctx context.Context, content []byte, name, ownerType, ownerID string) (models.FileRecord, error) {
	fingerprint := Fingerprint(content)

	existing, found, err := s.store.FindByFingerprint(ctx, fingerprint, name)
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("dedup lookup: %w", err)
	}
	if found {
		return existing, nil
	}

	// Binding failure must not abort the upload; the URL falls back to the
	// bucket's default hostname until the binding succeeds on a later ingest.
	if s.mode == configuration.ModeRemote && s.binder != nil {
		if err := s.binder.EnsureBound(ctx); err != nil {
			log.Printf("warning: domain binding failed, using default hostname: %v", err)
		}
	}

	backend := s.activeBackend()
	if backend == nil {
		return models.FileRecord{}, ErrRemoteNotConfigured
	}

	reference, err := backend.Put(ctx, content, extensionOf(name))
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("blob write failed: %w", err)
	}

	record := models.FileRecord{
		ID:          uuid.New().String(),
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		Name:        name,
		Extension:   extensionOf(name),
		Fingerprint: fingerprint,
		SizeBytes:   int64(len(content)),
		Reference:   reference,
		Status:      models.StatusActive,
		SortOrder:   0,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Create(ctx, &record); err != nil {
		// No partial record may survive; reclaim the blob we just wrote.
		if delErr := backend.Delete(ctx, reference); delErr != nil {
			log.Printf("warning: failed to clean up blob after metadata failure: %v", delErr)
		}
		return models.FileRecord{}, fmt.Errorf("failed to save file record: %w", err)
	}

	s.events.Publish("files.uploaded", map[string]any{
		"action":      "uploaded",
		"file_id":     record.ID,
		"name":        record.Name,
		"fingerprint": record.Fingerprint,
		"size":        record.SizeBytes,
		"owner_id":    record.OwnerID,
		"uploaded_at": record.CreatedAt.Format(time.RFC3339),
	})

	return record, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.FileRecord, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) ResolveURL(record models.FileRecord) string {
	return s.resolver.Resolve(record)
}

func (s *Service) List(ctx context.Context, filters records.ListFilters, current, pageSize int) ([]models.FileRecord, int64, error) {
	files, err := s.store.List(ctx, filters, current, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.Count(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

// deleteBlob dispatches a record's blob deletion to the backend that owns
// it, decided by the stored reference shape.
func (s *Service) deleteBlob(ctx context.Context, record models.FileRecord) error {
	if storage.IsRemoteReference(record.Reference) {
		if s.remote == nil {
			return ErrRemoteNotConfigured
		}
		return s.remote.Delete(ctx, record.Reference)
	}
	if s.local == nil {
		return errors.New("local storage is not configured")
	}
	return s.local.Delete(ctx, record.Reference)
}

// Remove deletes the blobs behind the given ids and transitions all of them
// to Removed in one batch. Per-id backend failures are collected and
// returned; they do not block the status update.
func (s *Service) Remove(ctx context.Context, ids []string) (int64, []RemoveFailure, error) {
	if len(ids) == 0 {
		return 0, nil, ErrInvalidArgument
	}

	var failures []RemoveFailure
	for _, id := range ids {
		record, err := s.store.GetByID(ctx, id)
		if err != nil {
			failures = append(failures, RemoveFailure{ID: id, Err: err})
			continue
		}
		if err := s.deleteBlob(ctx, record); err != nil {
			log.Printf("warning: blob delete failed for %s: %v", id, err)
			failures = append(failures, RemoveFailure{ID: id, Err: err})
		}
	}

	count, err := s.store.UpdateStatus(ctx, ids, models.StatusRemoved)
	if err != nil {
		return 0, failures, fmt.Errorf("failed to update status: %w", err)
	}

	s.events.Publish("files.removed", map[string]any{
		"action":     "removed",
		"file_ids":   ids,
		"removed_at": time.Now().UTC().Format(time.RFC3339),
	})

	return count, failures, nil
}

// SetStatus handles the non-removal transitions (active <-> disabled). Pure
// metadata update, no backend interaction.
func (s *Service) SetStatus(ctx context.Context, ids []string, status int) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrInvalidArgument
	}
	if status != models.StatusActive && status != models.StatusDisabled {
		return 0, fmt.Errorf("%w: status must be %d or %d", ErrInvalidArgument, models.StatusActive, models.StatusDisabled)
	}
	return s.store.UpdateStatus(ctx, ids, status)
}

// Replace overwrites a record's content in place: new blob, new fingerprint,
// new reference, updated together. Local mode only.
func (s *Service) Replace(ctx context.Context, id string, content []byte, name string) (models.FileRecord, error) {
	if s.mode != configuration.ModeLocal {
		return models.FileRecord{}, ErrReplaceRemote
	}

	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.FileRecord{}, err
	}

	reference, err := s.local.Put(ctx, content, extensionOf(name))
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("blob write failed: %w", err)
	}

	fingerprint := Fingerprint(content)
	if err := s.store.UpdateContent(ctx, id, name, fingerprint, reference); err != nil {
		if delErr := s.local.Delete(ctx, reference); delErr != nil {
			log.Printf("warning: failed to clean up blob after metadata failure: %v", delErr)
		}
		return models.FileRecord{}, fmt.Errorf("failed to update file record: %w", err)
	}

	// The previous blob is unreachable now; reclaim it.
	if !storage.IsRemoteReference(record.Reference) {
		if err := s.local.Delete(ctx, record.Reference); err != nil {
			log.Printf("warning: failed to delete stale blob %q: %v", record.Reference, err)
		}
	}

	record.Name = name
	record.Extension = extensionOf(name)
	record.Fingerprint = fingerprint
	record.Reference = reference
	return record, nil
}
