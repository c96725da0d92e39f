package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/port"
)

type BackupService struct {
	store        port.KeyValueStore
	archive      port.BackupArchive
	archiveQueue chan domain.ArchivedBackup
}

func NewBackupService(store port.KeyValueStore, archive port.BackupArchive, queueSize int) *BackupService {
	return &BackupService{
		store:        store,
		archive:      archive,
		archiveQueue: make(chan domain.ArchivedBackup, queueSize),
	}
}

// Export copies every present storage key into a backup document, keeping
// each stored value byte-for-byte. Values that are not valid JSON are skipped.
func (s *BackupService) Export(ctx context.Context) (domain.Backup, error) {
	b := domain.Backup{
		Version:   domain.BackupVersion,
		Timestamp: time.Now().UTC(),
		Data:      make(map[string]json.RawMessage),
	}

	for _, key := range domain.StorageKeys {
		raw, found, err := s.store.GetItem(ctx, key)
		if err != nil {
			return domain.Backup{}, fmt.Errorf("read %s: %w", key, err)
		}
		if !found {
			continue
		}
		if !json.Valid([]byte(raw)) {
			log.Printf("backup: skipping %s, stored value is not valid JSON", key)
			continue
		}
		b.Data[key] = json.RawMessage(raw)
	}

	return b, nil
}

// ExportJSON is Export encoded as the downloadable document.
func (s *BackupService) ExportJSON(ctx context.Context) ([]byte, error) {
	b, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(b)
}

// Restore overwrites every known storage key present in the document's data.
// Only the presence of version, timestamp and data is checked. Unknown keys
// are ignored. Values are stored compact and HTML-escaped, the form ExportJSON
// emits, so a restored document exports back to the same bytes. It returns the
// keys written.
func (s *BackupService) Restore(ctx context.Context, document []byte) ([]string, error) {
	if !gjson.ValidBytes(document) {
		return nil, fmt.Errorf("backup is not valid JSON: %w", ErrInvalidBackup)
	}
	fields := gjson.GetManyBytes(document, "version", "timestamp", "data")
	for i, name := range []string{"version", "timestamp", "data"} {
		if !fields[i].Exists() {
			return nil, fmt.Errorf("backup is missing %q: %w", name, ErrInvalidBackup)
		}
	}
	data := fields[2]
	if !data.IsObject() {
		return nil, fmt.Errorf("backup data must be an object: %w", ErrInvalidBackup)
	}

	var (
		restored []string
		writeErr error
	)
	data.ForEach(func(key, value gjson.Result) bool {
		if !domain.IsStorageKey(key.String()) {
			log.Printf("backup: ignoring unknown key %q", key.String())
			return true
		}
		if err := s.store.SetItem(ctx, key.String(), canonicalJSON(value.Raw)); err != nil {
			writeErr = fmt.Errorf("restore %s: %w", key.String(), err)
			return false
		}
		restored = append(restored, key.String())
		return true
	})

	return restored, writeErr
}

// Clear removes every storage key, so reads fall back to defaults.
func (s *BackupService) Clear(ctx context.Context) error {
	for _, key := range domain.StorageKeys {
		if err := s.store.RemoveItem(ctx, key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}

func (s *BackupService) newArchived(ctx context.Context, label string) (domain.ArchivedBackup, error) {
	b, err := s.Export(ctx)
	if err != nil {
		return domain.ArchivedBackup{}, err
	}
	if label == "" {
		label = "backup " + b.Timestamp.Format(time.RFC3339)
	}
	return domain.ArchivedBackup{
		ID:        uuid.New().String(),
		Label:     label,
		Backup:    b,
		CreatedAt: b.Timestamp,
	}, nil
}

// Archive exports and saves a snapshot synchronously.
func (s *BackupService) Archive(ctx context.Context, label string) (domain.ArchivedBackup, error) {
	if s.archive == nil {
		return domain.ArchivedBackup{}, ErrNoArchive
	}
	archived, err := s.newArchived(ctx, label)
	if err != nil {
		return domain.ArchivedBackup{}, err
	}
	if err := s.archive.SaveBackup(ctx, archived); err != nil {
		return domain.ArchivedBackup{}, fmt.Errorf("archive backup: %w", err)
	}
	return archived, nil
}

// Snapshot exports now and queues the snapshot for the archive workers.
func (s *BackupService) Snapshot(ctx context.Context, label string) (domain.ArchivedBackup, error) {
	if s.archive == nil {
		return domain.ArchivedBackup{}, ErrNoArchive
	}
	archived, err := s.newArchived(ctx, label)
	if err != nil {
		return domain.ArchivedBackup{}, err
	}

	select {
	case s.archiveQueue <- archived:
		return archived, nil
	case <-ctx.Done():
		return domain.ArchivedBackup{}, ctx.Err()
	}
}

func (s *BackupService) ListArchived(ctx context.Context, limit int) ([]domain.ArchivedBackup, error) {
	if s.archive == nil {
		return nil, ErrNoArchive
	}
	return s.archive.ListBackups(ctx, limit)
}

// RestoreArchived restores an archived snapshot; an empty id means the latest.
func (s *BackupService) RestoreArchived(ctx context.Context, id string) ([]string, error) {
	if s.archive == nil {
		return nil, ErrNoArchive
	}

	var (
		archived *domain.ArchivedBackup
		err      error
	)
	if id == "" {
		archived, err = s.archive.LatestBackup(ctx)
	} else {
		archived, err = s.archive.GetBackup(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if archived == nil {
		return nil, fmt.Errorf("archived backup %q: %w", id, ErrNotFound)
	}

	document, err := json.Marshal(archived.Backup)
	if err != nil {
		return nil, err
	}
	return s.Restore(ctx, document)
}

func (s *BackupService) GetArchiveQueue() <-chan domain.ArchivedBackup {
	return s.archiveQueue
}

func (s *BackupService) Close() {
	close(s.archiveQueue)
}

func canonicalJSON(raw string) string {
	var compact, escaped bytes.Buffer
	if err := json.Compact(&compact, []byte(raw)); err != nil {
		return raw
	}
	json.HTMLEscape(&escaped, compact.Bytes())
	return escaped.String()
}
