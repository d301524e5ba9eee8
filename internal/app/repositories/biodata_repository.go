package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
)

var biodataRequestColumns = []string{
	"id", "mahasiswa_id", "changes", "status", "catatan", "created_at", "processed_at",
}

// BiodataRepository handles biodata change request database operations.
// Requested changes are stored as a JSONB column.
type BiodataRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBiodataRepository creates a new BiodataRepository
func NewBiodataRepository(db *pgxpool.Pool) *BiodataRepository {
	return &BiodataRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanBiodataRequest(row pgx.Row) (*models.BiodataChangeRequest, error) {
	req := &models.BiodataChangeRequest{}
	var changes []byte
	err := row.Scan(&req.ID, &req.MahasiswaID, &changes, &req.Status, &req.Catatan, &req.CreatedAt, &req.ProcessedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(changes, &req.Changes); err != nil {
		return nil, fmt.Errorf("error decoding biodata changes: %w", err)
	}
	return req, nil
}

// Create stores a pending change request.
func (r *BiodataRepository) Create(ctx context.Context, req *models.BiodataChangeRequest) error {
	changes, err := json.Marshal(req.Changes)
	if err != nil {
		return fmt.Errorf("error encoding biodata changes: %w", err)
	}

	sql, args, err := r.sb.Insert("biodata_change_requests").
		Columns("id", "mahasiswa_id", "changes", "status").
		Values(req.ID, req.MahasiswaID, changes, req.Status).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create biodata request query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating biodata request: %w", err)
	}
	return nil
}

// GetByID retrieves a change request.
func (r *BiodataRepository) GetByID(ctx context.Context, id string) (*models.BiodataChangeRequest, error) {
	sql, args, err := r.sb.Select(biodataRequestColumns...).
		From("biodata_change_requests").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get biodata request query: %w", err)
	}

	req, err := scanBiodataRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChangeRequestNotFound
		}
		return nil, fmt.Errorf("error getting biodata request: %w", err)
	}
	return req, nil
}

// HasPending reports whether the student already has a pending request.
func (r *BiodataRepository) HasPending(ctx context.Context, mahasiswaID string) (bool, error) {
	var n int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM biodata_change_requests WHERE mahasiswa_id = $1 AND status = $2",
		mahasiswaID, models.StatusPending).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("error checking pending biodata request: %w", err)
	}
	return n > 0, nil
}

// List returns change requests, optionally filtered by status or student.
func (r *BiodataRepository) List(ctx context.Context, status, mahasiswaID string) ([]*models.BiodataChangeRequest, error) {
	builder := r.sb.Select(biodataRequestColumns...).
		From("biodata_change_requests").
		OrderBy("created_at DESC")
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}
	if mahasiswaID != "" {
		builder = builder.Where(squirrel.Eq{"mahasiswa_id": mahasiswaID})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list biodata requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing biodata requests: %w", err)
	}
	defer rows.Close()

	var out []*models.BiodataChangeRequest
	for rows.Next() {
		req, err := scanBiodataRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning biodata request row: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// SetStatus records the admin verdict.
func (r *BiodataRepository) SetStatus(ctx context.Context, id, status string, catatan *string) error {
	sql, args, err := r.sb.Update("biodata_change_requests").
		Set("status", status).
		Set("catatan", catatan).
		Set("processed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set biodata status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error setting biodata request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrChangeRequestNotFound
	}
	return nil
}
