package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/db"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
	"github.com/nurhakim/siakad/internal/pkg/dberrors"
)

var tahunAkademikColumns = []string{"id", "kode", "nama", "semester", "is_active", "created_at", "updated_at"}

// TahunAkademikRepository handles academic term database operations
type TahunAkademikRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTahunAkademikRepository creates a new TahunAkademikRepository
func NewTahunAkademikRepository(db *pgxpool.Pool) *TahunAkademikRepository {
	return &TahunAkademikRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanTahunAkademik(row pgx.Row) (*models.TahunAkademik, error) {
	ta := &models.TahunAkademik{}
	err := row.Scan(&ta.ID, &ta.Kode, &ta.Nama, &ta.Semester, &ta.IsActive, &ta.CreatedAt, &ta.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return ta, nil
}

// Create inserts an academic term. When the new term is flagged active,
// the currently active term is deactivated in the same transaction.
func (r *TahunAkademikRepository) Create(ctx context.Context, ta *models.TahunAkademik) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if ta.IsActive {
			if _, err := tx.Exec(ctx, "UPDATE tahun_akademik SET is_active = FALSE WHERE is_active = TRUE"); err != nil {
				return fmt.Errorf("error deactivating current term: %w", err)
			}
		}

		sql, args, err := r.sb.Insert("tahun_akademik").
			Columns("id", "kode", "nama", "semester", "is_active").
			Values(ta.ID, ta.Kode, ta.Nama, ta.Semester, ta.IsActive).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create tahun akademik query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsDuplicateKeyError(err) {
				return apperrors.NewBadRequestError("kode tahun akademik sudah dipakai")
			}
			return fmt.Errorf("error creating tahun akademik: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a term by ID.
func (r *TahunAkademikRepository) GetByID(ctx context.Context, id string) (*models.TahunAkademik, error) {
	sql, args, err := r.sb.Select(tahunAkademikColumns...).
		From("tahun_akademik").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get tahun akademik query: %w", err)
	}

	ta, err := scanTahunAkademik(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTahunAkademikNotFound
		}
		return nil, fmt.Errorf("error getting tahun akademik: %w", err)
	}
	return ta, nil
}

// GetActive retrieves the single active term.
func (r *TahunAkademikRepository) GetActive(ctx context.Context) (*models.TahunAkademik, error) {
	sql, args, err := r.sb.Select(tahunAkademikColumns...).
		From("tahun_akademik").
		Where(squirrel.Eq{"is_active": true}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get active term query: %w", err)
	}

	ta, err := scanTahunAkademik(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoActiveTahunAkademik
		}
		return nil, fmt.Errorf("error getting active tahun akademik: %w", err)
	}
	return ta, nil
}

// List returns all terms, newest first.
func (r *TahunAkademikRepository) List(ctx context.Context) ([]*models.TahunAkademik, error) {
	sql, args, err := r.sb.Select(tahunAkademikColumns...).
		From("tahun_akademik").
		OrderBy("kode DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list tahun akademik query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing tahun akademik: %w", err)
	}
	defer rows.Close()

	var out []*models.TahunAkademik
	for rows.Next() {
		ta, err := scanTahunAkademik(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning tahun akademik row: %w", err)
		}
		out = append(out, ta)
	}
	return out, rows.Err()
}

// NamesByIDs returns id -> nama for the given term IDs.
func (r *TahunAkademikRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	sql, args, err := r.sb.Select("id", "nama").
		From("tahun_akademik").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build term names query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching term names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, nama string
		if err := rows.Scan(&id, &nama); err != nil {
			return nil, fmt.Errorf("error scanning term name row: %w", err)
		}
		names[id] = nama
	}
	return names, rows.Err()
}

// SetActive activates one term and deactivates every other, atomically.
func (r *TahunAkademikRepository) SetActive(ctx context.Context, id string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "UPDATE tahun_akademik SET is_active = FALSE WHERE is_active = TRUE"); err != nil {
			return fmt.Errorf("error deactivating current term: %w", err)
		}
		tag, err := tx.Exec(ctx, "UPDATE tahun_akademik SET is_active = TRUE, updated_at = NOW() WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("error activating term: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrTahunAkademikNotFound
		}
		return nil
	})
}

// Update modifies a term's descriptive fields.
func (r *TahunAkademikRepository) Update(ctx context.Context, ta *models.TahunAkademik) error {
	sql, args, err := r.sb.Update("tahun_akademik").
		Set("kode", ta.Kode).
		Set("nama", ta.Nama).
		Set("semester", ta.Semester).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ta.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update tahun akademik query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating tahun akademik: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTahunAkademikNotFound
	}
	return nil
}

// Delete removes a term.
func (r *TahunAkademikRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("tahun_akademik").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete tahun akademik query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting tahun akademik: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTahunAkademikNotFound
	}
	return nil
}
