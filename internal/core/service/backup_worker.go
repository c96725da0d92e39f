package service

import (
	"context"
	"log"
	"time"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/port"
)

const archiveTimeout = 10 * time.Second

// ArchiveWorker saves queued snapshots until the queue is closed.
func ArchiveWorker(id int, queue <-chan domain.ArchivedBackup, archive port.BackupArchive) {
	for archived := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)

		if err := archive.SaveBackup(ctx, archived); err != nil {
			log.Printf("worker %d: failed to archive backup %s: %v", id, archived.ID, err)
		} else {
			log.Printf("worker %d: archived backup %s (%d keys)", id, archived.ID, len(archived.Backup.Data))
		}

		cancel()
	}
}

// AutoBackup queues a snapshot every interval until ctx is done.
func AutoBackup(ctx context.Context, backups *BackupService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("auto-backup: snapshot every %s", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			archived, err := backups.Snapshot(ctx, "")
			if err != nil {
				log.Printf("auto-backup: snapshot failed: %v", err)
				continue
			}
			log.Printf("auto-backup: queued %s", archived.ID)
		}
	}
}
