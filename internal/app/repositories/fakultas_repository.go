package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
	"github.com/nurhakim/siakad/internal/pkg/dberrors"
)

// FakultasRepository handles faculty database operations
type FakultasRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFakultasRepository creates a new FakultasRepository
func NewFakultasRepository(db *pgxpool.Pool) *FakultasRepository {
	return &FakultasRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a faculty.
func (r *FakultasRepository) Create(ctx context.Context, f *models.Fakultas) error {
	sql, args, err := r.sb.Insert("fakultas").
		Columns("id", "kode", "nama").
		Values(f.ID, f.Kode, f.Nama).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create fakultas query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrFakultasAlreadyExists
		}
		return fmt.Errorf("error creating fakultas: %w", err)
	}
	return nil
}

// GetByID retrieves a faculty by ID.
func (r *FakultasRepository) GetByID(ctx context.Context, id string) (*models.Fakultas, error) {
	sql, args, err := r.sb.Select("id", "kode", "nama", "created_at", "updated_at").
		From("fakultas").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get fakultas query: %w", err)
	}

	f := &models.Fakultas{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&f.ID, &f.Kode, &f.Nama, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFakultasNotFound
		}
		return nil, fmt.Errorf("error getting fakultas: %w", err)
	}
	return f, nil
}

// List returns all faculties ordered by code.
func (r *FakultasRepository) List(ctx context.Context) ([]*models.Fakultas, error) {
	sql, args, err := r.sb.Select("id", "kode", "nama", "created_at", "updated_at").
		From("fakultas").
		OrderBy("kode").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list fakultas query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing fakultas: %w", err)
	}
	defer rows.Close()

	var out []*models.Fakultas
	for rows.Next() {
		f := &models.Fakultas{}
		if err := rows.Scan(&f.ID, &f.Kode, &f.Nama, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning fakultas row: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// NamesByIDs returns id -> nama for the given faculty IDs.
func (r *FakultasRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	sql, args, err := r.sb.Select("id", "nama").
		From("fakultas").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build fakultas names query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching fakultas names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, nama string
		if err := rows.Scan(&id, &nama); err != nil {
			return nil, fmt.Errorf("error scanning fakultas name row: %w", err)
		}
		names[id] = nama
	}
	return names, rows.Err()
}

// Update modifies a faculty's code and name.
func (r *FakultasRepository) Update(ctx context.Context, f *models.Fakultas) error {
	sql, args, err := r.sb.Update("fakultas").
		Set("kode", f.Kode).
		Set("nama", f.Nama).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": f.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update fakultas query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrFakultasAlreadyExists
		}
		return fmt.Errorf("error updating fakultas: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFakultasNotFound
	}
	return nil
}

// Delete removes a faculty. Fails when prodi still reference it.
func (r *FakultasRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("fakultas").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete fakultas query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrFakultasHasProdi
		}
		return fmt.Errorf("error deleting fakultas: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFakultasNotFound
	}
	return nil
}
