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

var mataKuliahColumns = []string{"id", "kode", "nama", "sks_teori", "sks_praktik", "semester", "kurikulum_id", "prodi_id", "prasyarat", "created_at", "updated_at"}

// MataKuliahRepository handles course database operations
type MataKuliahRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMataKuliahRepository creates a new MataKuliahRepository
func NewMataKuliahRepository(db *pgxpool.Pool) *MataKuliahRepository {
	return &MataKuliahRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanMataKuliah(row pgx.Row) (*models.MataKuliah, error) {
	mk := &models.MataKuliah{}
	err := row.Scan(&mk.ID, &mk.Kode, &mk.Nama, &mk.SKSTeori, &mk.SKSPraktik, &mk.Semester, &mk.KurikulumID, &mk.ProdiID, &mk.Prasyarat, &mk.CreatedAt, &mk.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if mk.Prasyarat == nil {
		mk.Prasyarat = []string{}
	}
	mk.TotalSKS = mk.SKSTeori + mk.SKSPraktik
	return mk, nil
}

// Create inserts a course.
func (r *MataKuliahRepository) Create(ctx context.Context, mk *models.MataKuliah) error {
	sql, args, err := r.sb.Insert("mata_kuliah").
		Columns("id", "kode", "nama", "sks_teori", "sks_praktik", "semester", "kurikulum_id", "prodi_id", "prasyarat").
		Values(mk.ID, mk.Kode, mk.Nama, mk.SKSTeori, mk.SKSPraktik, mk.Semester, mk.KurikulumID, mk.ProdiID, mk.Prasyarat).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create mata kuliah query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrKurikulumNotFound
		}
		return fmt.Errorf("error creating mata kuliah: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID.
func (r *MataKuliahRepository) GetByID(ctx context.Context, id string) (*models.MataKuliah, error) {
	sql, args, err := r.sb.Select(mataKuliahColumns...).
		From("mata_kuliah").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get mata kuliah query: %w", err)
	}

	mk, err := scanMataKuliah(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMataKuliahNotFound
		}
		return nil, fmt.Errorf("error getting mata kuliah: %w", err)
	}
	return mk, nil
}

// GetByIDs batch-fetches courses for decoration.
func (r *MataKuliahRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.MataKuliah, error) {
	if len(ids) == 0 {
		return map[string]*models.MataKuliah{}, nil
	}
	sql, args, err := r.sb.Select(mataKuliahColumns...).
		From("mata_kuliah").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build mata kuliah batch query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error batch fetching mata kuliah: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*models.MataKuliah, len(ids))
	for rows.Next() {
		mk, err := scanMataKuliah(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning mata kuliah row: %w", err)
		}
		out[mk.ID] = mk
	}
	return out, rows.Err()
}

// List returns courses filtered by kurikulum and/or prodi scope.
func (r *MataKuliahRepository) List(ctx context.Context, kurikulumID string, prodiIDs []string) ([]*models.MataKuliah, error) {
	if prodiIDs != nil && len(prodiIDs) == 0 {
		return []*models.MataKuliah{}, nil
	}
	builder := r.sb.Select(mataKuliahColumns...).From("mata_kuliah").OrderBy("semester", "kode")
	if kurikulumID != "" {
		builder = builder.Where(squirrel.Eq{"kurikulum_id": kurikulumID})
	}
	if prodiIDs != nil {
		builder = builder.Where(squirrel.Eq{"prodi_id": prodiIDs})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list mata kuliah query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing mata kuliah: %w", err)
	}
	defer rows.Close()

	var out []*models.MataKuliah
	for rows.Next() {
		mk, err := scanMataKuliah(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning mata kuliah row: %w", err)
		}
		out = append(out, mk)
	}
	return out, rows.Err()
}

// Count returns the number of courses in the prodi scope.
func (r *MataKuliahRepository) Count(ctx context.Context, prodiIDs []string) (int64, error) {
	if prodiIDs != nil && len(prodiIDs) == 0 {
		return 0, nil
	}
	builder := r.sb.Select("COUNT(*)").From("mata_kuliah")
	if prodiIDs != nil {
		builder = builder.Where(squirrel.Eq{"prodi_id": prodiIDs})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count mata kuliah query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting mata kuliah: %w", err)
	}
	return n, nil
}

// Update modifies a course.
func (r *MataKuliahRepository) Update(ctx context.Context, mk *models.MataKuliah) error {
	sql, args, err := r.sb.Update("mata_kuliah").
		Set("kode", mk.Kode).
		Set("nama", mk.Nama).
		Set("sks_teori", mk.SKSTeori).
		Set("sks_praktik", mk.SKSPraktik).
		Set("prasyarat", mk.Prasyarat).
		Set("semester", mk.Semester).
		Set("kurikulum_id", mk.KurikulumID).
		Set("prodi_id", mk.ProdiID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": mk.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update mata kuliah query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating mata kuliah: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMataKuliahNotFound
	}
	return nil
}

// Delete removes a course.
func (r *MataKuliahRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("mata_kuliah").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete mata kuliah query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting mata kuliah: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMataKuliahNotFound
	}
	return nil
}
