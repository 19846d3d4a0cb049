package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/ashabelnikov/file-pipeline/internal/entity"
	"github.com/ashabelnikov/file-pipeline/pkg/postgres"
	"github.com/ashabelnikov/file-pipeline/pkg/types/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// Columns
	fileIDColumn     = "file_id"
	statusColumn     = "status"
	fileTypeColumn   = "file_type"
	fileSizeColumn   = "file_size"
	fileNameColumn   = "file_name"
	uploadedAtColumn = "uploaded_at"
	updatedAtColumn  = "updated_at"
	expiresAtColumn  = "expires_at"
	metadataColumn   = "metadata"

	uniqueViolationCode = "23505"
)

type FileMetadataRepo struct {
	*postgres.Postgres
	table string
}

func NewFileMetadataRepo(pg *postgres.Postgres, table string) *FileMetadataRepo {
	return &FileMetadataRepo{pg, table}
}

func (r *FileMetadataRepo) Create(ctx context.Context, record *entity.FileRecord) error {
	sql, args, err := r.Builder.
		Insert(r.table).
		Columns(
			fileIDColumn,
			statusColumn,
			fileTypeColumn,
			fileSizeColumn,
			fileNameColumn,
			uploadedAtColumn,
			updatedAtColumn,
			expiresAtColumn,
		).
		Values(
			record.FileID,
			record.Status,
			record.FileType,
			record.FileSize,
			record.FileName,
			record.UploadedAt,
			record.UpdatedAt,
			record.ExpiresAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("FileMetadataRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("FileMetadataRepo - Create: %w", errs.ErrDuplicateRecord)
		}
		return fmt.Errorf("FileMetadataRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

// Transition always sets status and updated_at; metadata is written only
// when the payload is non-empty. Terminal records may be overwritten with
// an equivalent terminal state on redelivery.
func (r *FileMetadataRepo) Transition(ctx context.Context, fileID string, status entity.Status, metadata map[string]any) error {
	builder := r.Builder.
		Update(r.table).
		Set(statusColumn, status).
		Set(updatedAtColumn, time.Now()).
		Where(squirrel.Eq{fileIDColumn: fileID})

	if len(metadata) > 0 {
		builder = builder.Set(metadataColumn, metadata)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("FileMetadataRepo - Transition - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("FileMetadataRepo - Transition - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("FileMetadataRepo - Transition: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *FileMetadataRepo) GetByID(ctx context.Context, fileID string) (*entity.FileRecord, error) {
	sql, args, err := r.Builder.
		Select(
			fileIDColumn,
			statusColumn,
			fileTypeColumn,
			fileSizeColumn,
			fileNameColumn,
			uploadedAtColumn,
			updatedAtColumn,
			expiresAtColumn,
			metadataColumn,
		).
		From(r.table).
		Where(squirrel.Eq{fileIDColumn: fileID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("FileMetadataRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var record entity.FileRecord
	err = executor.QueryRow(ctx, sql, args...).Scan(
		&record.FileID,
		&record.Status,
		&record.FileType,
		&record.FileSize,
		&record.FileName,
		&record.UploadedAt,
		&record.UpdatedAt,
		&record.ExpiresAt,
		&record.Metadata,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("FileMetadataRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("FileMetadataRepo - GetByID - executor.QueryRow: %w", err)
	}

	return &record, nil
}

// DeleteExpired reclaims records past their expiry instant.
func (r *FileMetadataRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.Builder.
		Delete(r.table).
		Where(squirrel.Lt{expiresAtColumn: now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("FileMetadataRepo - DeleteExpired - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("FileMetadataRepo - DeleteExpired - executor.Exec: %w", err)
	}

	return tag.RowsAffected(), nil
}
