package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nurhakim/siakad/internal/app/models"
)

var nilaiColumns = []string{
	"id", "krs_id", "mahasiswa_id", "kelas_id", "tugas", "uts", "uas",
	"nilai_akhir", "nilai_huruf", "bobot", "created_at", "updated_at",
}

// NilaiRepository handles grade database operations
type NilaiRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNilaiRepository creates a new NilaiRepository
func NewNilaiRepository(db *pgxpool.Pool) *NilaiRepository {
	return &NilaiRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanNilai(row pgx.Row) (*models.Nilai, error) {
	n := &models.Nilai{}
	err := row.Scan(
		&n.ID, &n.KRSID, &n.MahasiswaID, &n.KelasID, &n.Tugas, &n.UTS, &n.UAS,
		&n.NilaiAkhir, &n.NilaiHuruf, &n.Bobot, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Upsert writes grade components, overwriting any prior grade for the
// same KRS entry.
func (r *NilaiRepository) Upsert(ctx context.Context, n *models.Nilai) error {
	sql, args, err := r.sb.Insert("nilai").
		Columns("id", "krs_id", "mahasiswa_id", "kelas_id", "tugas", "uts", "uas",
			"nilai_akhir", "nilai_huruf", "bobot").
		Values(n.ID, n.KRSID, n.MahasiswaID, n.KelasID, n.Tugas, n.UTS, n.UAS,
			n.NilaiAkhir, n.NilaiHuruf, n.Bobot).
		Suffix(`ON CONFLICT (krs_id) DO UPDATE SET
			tugas = EXCLUDED.tugas,
			uts = EXCLUDED.uts,
			uas = EXCLUDED.uas,
			nilai_akhir = EXCLUDED.nilai_akhir,
			nilai_huruf = EXCLUDED.nilai_huruf,
			bobot = EXCLUDED.bobot,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert nilai query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error upserting nilai: %w", err)
	}
	return nil
}

// GetByKRS retrieves the grade for one enrollment, nil when ungraded.
func (r *NilaiRepository) GetByKRS(ctx context.Context, krsID string) (*models.Nilai, error) {
	sql, args, err := r.sb.Select(nilaiColumns...).
		From("nilai").
		Where(squirrel.Eq{"krs_id": krsID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get nilai query: %w", err)
	}

	n, err := scanNilai(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting nilai: %w", err)
	}
	return n, nil
}

// GetByKRSIDs batch-fetches grades keyed by KRS ID.
func (r *NilaiRepository) GetByKRSIDs(ctx context.Context, krsIDs []string) (map[string]*models.Nilai, error) {
	if len(krsIDs) == 0 {
		return map[string]*models.Nilai{}, nil
	}
	sql, args, err := r.sb.Select(nilaiColumns...).
		From("nilai").
		Where(squirrel.Eq{"krs_id": krsIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build nilai batch query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error batch fetching nilai: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*models.Nilai, len(krsIDs))
	for rows.Next() {
		n, err := scanNilai(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning nilai row: %w", err)
		}
		out[n.KRSID] = n
	}
	return out, rows.Err()
}

// ListByKelas returns all grades entered for one section.
func (r *NilaiRepository) ListByKelas(ctx context.Context, kelasID string) ([]*models.Nilai, error) {
	sql, args, err := r.sb.Select(nilaiColumns...).
		From("nilai").
		Where(squirrel.Eq{"kelas_id": kelasID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list nilai query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing nilai: %w", err)
	}
	defer rows.Close()

	var out []*models.Nilai
	for rows.Next() {
		n, err := scanNilai(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning nilai row: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
