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

var kelasColumns = []string{
	"id", "kode_kelas", "mata_kuliah_id", "dosen_id", "tahun_akademik_id", "prodi_id",
	"hari", "jam_mulai", "jam_selesai", "ruangan", "kuota", "created_at", "updated_at",
}

// KelasRepository handles class section database operations
type KelasRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewKelasRepository creates a new KelasRepository
func NewKelasRepository(db *pgxpool.Pool) *KelasRepository {
	return &KelasRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanKelas(row pgx.Row) (*models.Kelas, error) {
	k := &models.Kelas{}
	err := row.Scan(
		&k.ID, &k.KodeKelas, &k.MataKuliahID, &k.DosenID, &k.TahunAkademikID, &k.ProdiID,
		&k.Hari, &k.JamMulai, &k.JamSelesai, &k.Ruangan, &k.Kuota, &k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// Create inserts a class section.
func (r *KelasRepository) Create(ctx context.Context, k *models.Kelas) error {
	sql, args, err := r.sb.Insert("kelas").
		Columns("id", "kode_kelas", "mata_kuliah_id", "dosen_id", "tahun_akademik_id", "prodi_id",
			"hari", "jam_mulai", "jam_selesai", "ruangan", "kuota").
		Values(k.ID, k.KodeKelas, k.MataKuliahID, k.DosenID, k.TahunAkademikID, k.ProdiID,
			k.Hari, k.JamMulai, k.JamSelesai, k.Ruangan, k.Kuota).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create kelas query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referensi kelas tidak valid")
		}
		return fmt.Errorf("error creating kelas: %w", err)
	}
	return nil
}

// GetByID retrieves a class section by ID.
func (r *KelasRepository) GetByID(ctx context.Context, id string) (*models.Kelas, error) {
	sql, args, err := r.sb.Select(kelasColumns...).
		From("kelas").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get kelas query: %w", err)
	}

	k, err := scanKelas(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrKelasNotFound
		}
		return nil, fmt.Errorf("error getting kelas: %w", err)
	}
	return k, nil
}

// GetByIDs batch-fetches sections for decoration.
func (r *KelasRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Kelas, error) {
	if len(ids) == 0 {
		return map[string]*models.Kelas{}, nil
	}
	sql, args, err := r.sb.Select(kelasColumns...).
		From("kelas").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build kelas batch query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error batch fetching kelas: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*models.Kelas, len(ids))
	for rows.Next() {
		k, err := scanKelas(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning kelas row: %w", err)
		}
		out[k.ID] = k
	}
	return out, rows.Err()
}

// ListFilter narrows section listings.
type ListFilter struct {
	TahunAkademikID string
	ProdiIDs        []string
	DosenID         string
}

// List returns class sections matching the filter.
func (r *KelasRepository) List(ctx context.Context, filter ListFilter) ([]*models.Kelas, error) {
	if filter.ProdiIDs != nil && len(filter.ProdiIDs) == 0 {
		return []*models.Kelas{}, nil
	}
	builder := r.sb.Select(kelasColumns...).From("kelas").OrderBy("kode_kelas")
	if filter.TahunAkademikID != "" {
		builder = builder.Where(squirrel.Eq{"tahun_akademik_id": filter.TahunAkademikID})
	}
	if filter.ProdiIDs != nil {
		builder = builder.Where(squirrel.Eq{"prodi_id": filter.ProdiIDs})
	}
	if filter.DosenID != "" {
		builder = builder.Where(squirrel.Eq{"dosen_id": filter.DosenID})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list kelas query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing kelas: %w", err)
	}
	defer rows.Close()

	var out []*models.Kelas
	for rows.Next() {
		k, err := scanKelas(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning kelas row: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// ListByRuangan returns sections held in the room during the term.
// The day filter happens in the conflict scanner, not here, so the
// scanner sees the full picture when diagnosing.
func (r *KelasRepository) ListByRuangan(ctx context.Context, tahunAkademikID, ruangan string) ([]*models.Kelas, error) {
	return r.listBy(ctx, squirrel.Eq{"tahun_akademik_id": tahunAkademikID, "ruangan": ruangan})
}

// ListByDosen returns sections taught by the dosen during the term.
func (r *KelasRepository) ListByDosen(ctx context.Context, tahunAkademikID, dosenID string) ([]*models.Kelas, error) {
	return r.listBy(ctx, squirrel.Eq{"tahun_akademik_id": tahunAkademikID, "dosen_id": dosenID})
}

func (r *KelasRepository) listBy(ctx context.Context, where squirrel.Eq) ([]*models.Kelas, error) {
	sql, args, err := r.sb.Select(kelasColumns...).From("kelas").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build kelas slot query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing kelas slots: %w", err)
	}
	defer rows.Close()

	var out []*models.Kelas
	for rows.Next() {
		k, err := scanKelas(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning kelas row: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Update modifies a class section.
func (r *KelasRepository) Update(ctx context.Context, k *models.Kelas) error {
	sql, args, err := r.sb.Update("kelas").
		Set("kode_kelas", k.KodeKelas).
		Set("mata_kuliah_id", k.MataKuliahID).
		Set("dosen_id", k.DosenID).
		Set("tahun_akademik_id", k.TahunAkademikID).
		Set("prodi_id", k.ProdiID).
		Set("hari", k.Hari).
		Set("jam_mulai", k.JamMulai).
		Set("jam_selesai", k.JamSelesai).
		Set("ruangan", k.Ruangan).
		Set("kuota", k.Kuota).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": k.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update kelas query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating kelas: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrKelasNotFound
	}
	return nil
}

// Delete removes a class section.
func (r *KelasRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("kelas").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete kelas query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting kelas: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrKelasNotFound
	}
	return nil
}

// CountPeserta returns enrolled (non-rejected) counts per kelas.
func (r *KelasRepository) CountPeserta(ctx context.Context, kelasIDs []string) (map[string]int, error) {
	if len(kelasIDs) == 0 {
		return map[string]int{}, nil
	}
	sql, args, err := r.sb.Select("kelas_id", "COUNT(*)").
		From("krs").
		Where(squirrel.Eq{"kelas_id": kelasIDs}).
		Where(squirrel.NotEq{"status": models.KRSDitolak}).
		GroupBy("kelas_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count peserta query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error counting peserta: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int, len(kelasIDs))
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("error scanning peserta count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// Count returns the number of kelas rows in the prodi scope.
func (r *KelasRepository) Count(ctx context.Context, prodiIDs []string) (int64, error) {
	if prodiIDs != nil && len(prodiIDs) == 0 {
		return 0, nil
	}
	builder := r.sb.Select("COUNT(*)").From("kelas")
	if prodiIDs != nil {
		builder = builder.Where(squirrel.Eq{"prodi_id": prodiIDs})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count kelas query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting kelas: %w", err)
	}
	return n, nil
}
