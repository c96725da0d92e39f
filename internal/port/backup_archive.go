package port

import (
	"context"

	"github.com/rl1809/invstrar/internal/core/domain"
)

type BackupArchive interface {
	// SaveBackup stores a snapshot under a new archive entry
	SaveBackup(ctx context.Context, archived domain.ArchivedBackup) error

	// LatestBackup returns the most recent snapshot, nil when the archive is empty
	LatestBackup(ctx context.Context) (*domain.ArchivedBackup, error)

	// GetBackup retrieves a snapshot by ID, nil when not found
	GetBackup(ctx context.Context, id string) (*domain.ArchivedBackup, error)

	// ListBackups returns snapshots newest first, without loading their data
	ListBackups(ctx context.Context, limit int) ([]domain.ArchivedBackup, error)
}
