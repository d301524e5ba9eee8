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

var kurikulumColumns = []string{"id", "kode", "nama", "tahun", "prodi_id", "is_active", "created_at", "updated_at"}

// KurikulumRepository handles curriculum database operations
type KurikulumRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewKurikulumRepository creates a new KurikulumRepository
func NewKurikulumRepository(db *pgxpool.Pool) *KurikulumRepository {
	return &KurikulumRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanKurikulum(row pgx.Row) (*models.Kurikulum, error) {
	k := &models.Kurikulum{}
	err := row.Scan(&k.ID, &k.Kode, &k.Nama, &k.Tahun, &k.ProdiID, &k.IsActive, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// Create inserts a curriculum.
func (r *KurikulumRepository) Create(ctx context.Context, k *models.Kurikulum) error {
	sql, args, err := r.sb.Insert("kurikulum").
		Columns("id", "kode", "nama", "tahun", "prodi_id", "is_active").
		Values(k.ID, k.Kode, k.Nama, k.Tahun, k.ProdiID, k.IsActive).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create kurikulum query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProdiNotFound
		}
		return fmt.Errorf("error creating kurikulum: %w", err)
	}
	return nil
}

// GetByID retrieves a curriculum by ID.
func (r *KurikulumRepository) GetByID(ctx context.Context, id string) (*models.Kurikulum, error) {
	sql, args, err := r.sb.Select(kurikulumColumns...).
		From("kurikulum").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get kurikulum query: %w", err)
	}

	k, err := scanKurikulum(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrKurikulumNotFound
		}
		return nil, fmt.Errorf("error getting kurikulum: %w", err)
	}
	return k, nil
}

// List returns curricula, optionally restricted to the given prodi IDs.
func (r *KurikulumRepository) List(ctx context.Context, prodiIDs []string) ([]*models.Kurikulum, error) {
	if prodiIDs != nil && len(prodiIDs) == 0 {
		return []*models.Kurikulum{}, nil
	}
	builder := r.sb.Select(kurikulumColumns...).From("kurikulum").OrderBy("tahun DESC", "kode")
	if prodiIDs != nil {
		builder = builder.Where(squirrel.Eq{"prodi_id": prodiIDs})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list kurikulum query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing kurikulum: %w", err)
	}
	defer rows.Close()

	var out []*models.Kurikulum
	for rows.Next() {
		k, err := scanKurikulum(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning kurikulum row: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Update modifies a curriculum.
func (r *KurikulumRepository) Update(ctx context.Context, k *models.Kurikulum) error {
	sql, args, err := r.sb.Update("kurikulum").
		Set("kode", k.Kode).
		Set("nama", k.Nama).
		Set("tahun", k.Tahun).
		Set("prodi_id", k.ProdiID).
		Set("is_active", k.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": k.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update kurikulum query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating kurikulum: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrKurikulumNotFound
	}
	return nil
}

// Delete removes a curriculum.
func (r *KurikulumRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("kurikulum").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete kurikulum query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting kurikulum: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrKurikulumNotFound
	}
	return nil
}
