package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rl1809/invstrar/internal/core/domain"
)

const backupsSchema = `
CREATE TABLE IF NOT EXISTS backups (
	id VARCHAR(36) PRIMARY KEY,
	label VARCHAR(255) NOT NULL,
	version VARCHAR(16) NOT NULL,
	backup_timestamp DATETIME(3) NOT NULL,
	payload LONGTEXT NOT NULL,
	created_at DATETIME(3) NOT NULL,
	INDEX idx_backups_created_at (created_at)
)`

var ErrDuplicateBackup = errors.New("backup already archived")

// MySQLAdapter archives backup documents. The DSN must set parseTime=true.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) Migrate(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, backupsSchema); err != nil {
		return fmt.Errorf("create backups table: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) SaveBackup(ctx context.Context, archived domain.ArchivedBackup) error {
	payload, err := json.Marshal(archived.Backup)
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}

	result, err := m.db.ExecContext(ctx, `
		INSERT IGNORE INTO backups (id, label, version, backup_timestamp, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		archived.ID, archived.Label, archived.Backup.Version, archived.Backup.Timestamp,
		string(payload), archived.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert backup: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrDuplicateBackup
	}

	return nil
}

func (m *MySQLAdapter) LatestBackup(ctx context.Context) (*domain.ArchivedBackup, error) {
	return m.getOne(ctx, `
		SELECT id, label, payload, created_at
		FROM backups ORDER BY created_at DESC LIMIT 1`)
}

func (m *MySQLAdapter) GetBackup(ctx context.Context, id string) (*domain.ArchivedBackup, error) {
	return m.getOne(ctx, `
		SELECT id, label, payload, created_at
		FROM backups WHERE id = ?`, id)
}

func (m *MySQLAdapter) getOne(ctx context.Context, query string, args ...any) (*domain.ArchivedBackup, error) {
	var (
		archived domain.ArchivedBackup
		payload  string
	)
	err := m.db.QueryRowContext(ctx, query, args...).
		Scan(&archived.ID, &archived.Label, &payload, &archived.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query backup: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &archived.Backup); err != nil {
		return nil, fmt.Errorf("decode backup %s: %w", archived.ID, err)
	}

	return &archived, nil
}

func (m *MySQLAdapter) ListBackups(ctx context.Context, limit int) ([]domain.ArchivedBackup, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT id, label, version, backup_timestamp, created_at
		FROM backups ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query backups: %w", err)
	}
	defer rows.Close()

	var backups []domain.ArchivedBackup
	for rows.Next() {
		var b domain.ArchivedBackup
		if err := rows.Scan(&b.ID, &b.Label, &b.Backup.Version, &b.Backup.Timestamp, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		backups = append(backups, b)
	}

	return backups, rows.Err()
}
