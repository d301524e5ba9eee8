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

var krsColumns = []string{
	"id", "mahasiswa_id", "kelas_id", "tahun_akademik_id", "status", "catatan_pa",
	"created_at", "updated_at",
}

// KRSRepository handles enrollment database operations
type KRSRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewKRSRepository creates a new KRSRepository
func NewKRSRepository(db *pgxpool.Pool) *KRSRepository {
	return &KRSRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanKRS(row pgx.Row) (*models.KRS, error) {
	k := &models.KRS{}
	err := row.Scan(
		&k.ID, &k.MahasiswaID, &k.KelasID, &k.TahunAkademikID, &k.Status, &k.CatatanPA,
		&k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// Create inserts an enrollment. A unique index on (mahasiswa_id,
// kelas_id) rejects duplicates.
func (r *KRSRepository) Create(ctx context.Context, k *models.KRS) error {
	sql, args, err := r.sb.Insert("krs").
		Columns("id", "mahasiswa_id", "kelas_id", "tahun_akademik_id", "status").
		Values(k.ID, k.MahasiswaID, k.KelasID, k.TahunAkademikID, k.Status).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create krs query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrKRSAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrKelasNotFound
		}
		return fmt.Errorf("error creating krs: %w", err)
	}
	return nil
}

// GetByID retrieves an enrollment by ID.
func (r *KRSRepository) GetByID(ctx context.Context, id string) (*models.KRS, error) {
	sql, args, err := r.sb.Select(krsColumns...).
		From("krs").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get krs query: %w", err)
	}

	k, err := scanKRS(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrKRSNotFound
		}
		return nil, fmt.Errorf("error getting krs: %w", err)
	}
	return k, nil
}

// ListByMahasiswa returns a student's enrollments, optionally filtered
// by term.
func (r *KRSRepository) ListByMahasiswa(ctx context.Context, mahasiswaID, tahunAkademikID string) ([]*models.KRS, error) {
	builder := r.sb.Select(krsColumns...).
		From("krs").
		Where(squirrel.Eq{"mahasiswa_id": mahasiswaID}).
		OrderBy("created_at")
	if tahunAkademikID != "" {
		builder = builder.Where(squirrel.Eq{"tahun_akademik_id": tahunAkademikID})
	}
	return r.list(ctx, builder)
}

// ListByKelas returns the roster of one section.
func (r *KRSRepository) ListByKelas(ctx context.Context, kelasID string) ([]*models.KRS, error) {
	builder := r.sb.Select(krsColumns...).
		From("krs").
		Where(squirrel.Eq{"kelas_id": kelasID}).
		OrderBy("created_at")
	return r.list(ctx, builder)
}

// ListAll returns enrollments across all students, optionally filtered
// by status and term. Used by the administrative KRS view.
func (r *KRSRepository) ListAll(ctx context.Context, status, tahunAkademikID string) ([]*models.KRS, error) {
	builder := r.sb.Select(krsColumns...).
		From("krs").
		OrderBy("created_at")
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}
	if tahunAkademikID != "" {
		builder = builder.Where(squirrel.Eq{"tahun_akademik_id": tahunAkademikID})
	}
	return r.list(ctx, builder)
}

// ListPendingByMahasiswaIDs returns submitted enrollments for the
// given students. Used by the advisor approval queue.
func (r *KRSRepository) ListPendingByMahasiswaIDs(ctx context.Context, mahasiswaIDs []string) ([]*models.KRS, error) {
	if len(mahasiswaIDs) == 0 {
		return []*models.KRS{}, nil
	}
	builder := r.sb.Select(krsColumns...).
		From("krs").
		Where(squirrel.Eq{"mahasiswa_id": mahasiswaIDs, "status": models.KRSDiajukan}).
		OrderBy("created_at")
	return r.list(ctx, builder)
}

func (r *KRSRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.KRS, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list krs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing krs: %w", err)
	}
	defer rows.Close()

	var out []*models.KRS
	for rows.Next() {
		k, err := scanKRS(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning krs row: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// UpdateStatus applies the advisor decision.
func (r *KRSRepository) UpdateStatus(ctx context.Context, id, status string, catatanPA *string) error {
	sql, args, err := r.sb.Update("krs").
		Set("status", status).
		Set("catatan_pa", catatanPA).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update krs status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating krs status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrKRSNotFound
	}
	return nil
}

// Delete removes an enrollment. Only the owning student may drop, and
// only while the entry is still submitted; services enforce that.
func (r *KRSRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("krs").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete krs query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting krs: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrKRSNotFound
	}
	return nil
}
