package records

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/admin-panel-kit/attachment-service/internal/models"
)

// PostgresStore implements Store on PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// Connect opens the database, verifies it and bootstraps the schema.
func (p *PostgresStore) Connect(connectionString string) error {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	p.db = db

	if err := p.createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("Connected to PostgreSQL successfully")
	return nil
}

func (p *PostgresStore) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS attachments (
		id UUID PRIMARY KEY,
		owner_type VARCHAR(50) NOT NULL,
		owner_id VARCHAR(100) NOT NULL,
		name VARCHAR(255) NOT NULL,
		extension VARCHAR(20) NOT NULL DEFAULT '',
		fingerprint CHAR(32) NOT NULL,
		size_bytes BIGINT NOT NULL,
		reference VARCHAR(500) NOT NULL,
		status SMALLINT NOT NULL DEFAULT 1,
		sort_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_attachments_fingerprint ON attachments(fingerprint, name);
	CREATE INDEX IF NOT EXISTS idx_attachments_status ON attachments(status);
	`

	_, err := p.db.Exec(query)
	return err
}

func (p *PostgresStore) Create(ctx context.Context, record *models.FileRecord) error {
	query := `
	INSERT INTO attachments (id, owner_type, owner_id, name, extension, fingerprint, size_bytes, reference, status, sort_order, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := p.db.ExecContext(ctx, query,
		record.ID,
		record.OwnerType,
		record.OwnerID,
		record.Name,
		record.Extension,
		record.Fingerprint,
		record.SizeBytes,
		record.Reference,
		record.Status,
		record.SortOrder,
		record.CreatedAt,
	)
	return err
}

const recordColumns = `id, owner_type, owner_id, name, extension, fingerprint, size_bytes, reference, status, sort_order, created_at`

func scanRecord(row interface{ Scan(...any) error }) (models.FileRecord, error) {
	var r models.FileRecord
	err := row.Scan(
		&r.ID,
		&r.OwnerType,
		&r.OwnerID,
		&r.Name,
		&r.Extension,
		&r.Fingerprint,
		&r.SizeBytes,
		&r.Reference,
		&r.Status,
		&r.SortOrder,
		&r.CreatedAt,
	)
	if err != nil {
		return models.FileRecord{}, err
	}
	r.Fingerprint = strings.TrimSpace(r.Fingerprint)
	return r, nil
}

func (p *PostgresStore) GetByID(ctx context.Context, id string) (models.FileRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM attachments WHERE id = $1`
	record, err := scanRecord(p.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return models.FileRecord{}, ErrNotFound
	}
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("failed to get file record: %w", err)
	}
	return record, nil
}

func (p *PostgresStore) FindByFingerprint(ctx context.Context, fingerprint, name string) (models.FileRecord, bool, error) {
	query := `SELECT ` + recordColumns + ` FROM attachments
	WHERE fingerprint = $1 AND name = $2 AND status != $3
	ORDER BY created_at LIMIT 1`
	record, err := scanRecord(p.db.QueryRowContext(ctx, query, fingerprint, name, models.StatusRemoved))
	if err == sql.ErrNoRows {
		return models.FileRecord{}, false, nil
	}
	if err != nil {
		return models.FileRecord{}, false, fmt.Errorf("failed to look up fingerprint: %w", err)
	}
	return record, true, nil
}

func (p *PostgresStore) UpdateStatus(ctx context.Context, ids []string, status int) (int64, error) {
	query := `UPDATE attachments SET status = $1 WHERE id = ANY($2)`
	result, err := p.db.ExecContext(ctx, query, status, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to update status: %w", err)
	}
	return result.RowsAffected()
}

func (p *PostgresStore) UpdateContent(ctx context.Context, id, name, fingerprint, reference string) error {
	query := `UPDATE attachments SET name = $1, fingerprint = $2, reference = $3 WHERE id = $4`
	result, err := p.db.ExecContext(ctx, query, name, fingerprint, reference, id)
	if err != nil {
		return fmt.Errorf("failed to update file record: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// buildListWhere assembles the WHERE clause shared by List and Count.
// status > 0 is unconditional: disabled rows still show, removed rows never do.
func buildListWhere(filters ListFilters) (string, []any) {
	conditions := []string{"status > 0"}
	var args []any

	if filters.Name != "" {
		args = append(args, "%"+filters.Name+"%")
		conditions = append(conditions, fmt.Sprintf("name LIKE $%d", len(args)))
	}
	if filters.Status != 0 {
		args = append(args, filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if !filters.DateStart.IsZero() {
		args = append(args, filters.DateStart)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filters.DateEnd.IsZero() {
		args = append(args, filters.DateEnd)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

func (p *PostgresStore) List(ctx context.Context, filters ListFilters, current, pageSize int) ([]models.FileRecord, error) {
	if current < 1 {
		current = 1
	}
	where, args := buildListWhere(filters)
	query := fmt.Sprintf(`SELECT %s FROM attachments WHERE %s
	ORDER BY sort_order DESC, created_at DESC
	LIMIT $%d OFFSET $%d`, recordColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, (current-1)*pageSize)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list file records: %w", err)
	}
	defer rows.Close()

	var files []models.FileRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}
		files = append(files, record)
	}
	return files, rows.Err()
}

func (p *PostgresStore) Count(ctx context.Context, filters ListFilters) (int64, error) {
	where, args := buildListWhere(filters)
	var total int64
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attachments WHERE `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count file records: %w", err)
	}
	return total, nil
}
