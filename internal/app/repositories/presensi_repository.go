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

// PresensiRepository handles class meeting and attendance operations
type PresensiRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPresensiRepository creates a new PresensiRepository
func NewPresensiRepository(db *pgxpool.Pool) *PresensiRepository {
	return &PresensiRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreatePertemuan opens a class meeting.
func (r *PresensiRepository) CreatePertemuan(ctx context.Context, p *models.Pertemuan) error {
	sql, args, err := r.sb.Insert("pertemuan").
		Columns("id", "kelas_id", "pertemuan_ke", "tanggal", "materi").
		Values(p.ID, p.KelasID, p.PertemuanKe, p.Tanggal, p.Materi).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create pertemuan query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.NewBadRequestError(fmt.Sprintf("pertemuan ke-%d sudah dibuka", p.PertemuanKe))
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrKelasNotFound
		}
		return fmt.Errorf("error creating pertemuan: %w", err)
	}
	return nil
}

// GetPertemuan retrieves one class meeting.
func (r *PresensiRepository) GetPertemuan(ctx context.Context, id string) (*models.Pertemuan, error) {
	sql, args, err := r.sb.Select("id", "kelas_id", "pertemuan_ke", "tanggal", "materi", "created_at").
		From("pertemuan").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get pertemuan query: %w", err)
	}

	p := &models.Pertemuan{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.KelasID, &p.PertemuanKe, &p.Tanggal, &p.Materi, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPertemuanNotFound
		}
		return nil, fmt.Errorf("error getting pertemuan: %w", err)
	}
	return p, nil
}

// ListPertemuan returns the meetings of one section in order.
func (r *PresensiRepository) ListPertemuan(ctx context.Context, kelasID string) ([]*models.Pertemuan, error) {
	sql, args, err := r.sb.Select("id", "kelas_id", "pertemuan_ke", "tanggal", "materi", "created_at").
		From("pertemuan").
		Where(squirrel.Eq{"kelas_id": kelasID}).
		OrderBy("pertemuan_ke").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list pertemuan query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing pertemuan: %w", err)
	}
	defer rows.Close()

	var out []*models.Pertemuan
	for rows.Next() {
		p := &models.Pertemuan{}
		if err := rows.Scan(&p.ID, &p.KelasID, &p.PertemuanKe, &p.Tanggal, &p.Materi, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning pertemuan row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpsertKehadiran writes the attendance marks for one meeting in a
// single transaction, replacing earlier marks for the same students.
func (r *PresensiRepository) UpsertKehadiran(ctx context.Context, entries []*models.Kehadiran) error {
	if len(entries) == 0 {
		return nil
	}
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, e := range entries {
			sql, args, err := r.sb.Insert("kehadiran").
				Columns("id", "pertemuan_id", "mahasiswa_id", "status").
				Values(e.ID, e.PertemuanID, e.MahasiswaID, e.Status).
				Suffix(`ON CONFLICT (pertemuan_id, mahasiswa_id) DO UPDATE SET
					status = EXCLUDED.status,
					updated_at = NOW()`).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build upsert kehadiran query: %w", err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("error upserting kehadiran: %w", err)
			}
		}
		return nil
	})
}

// ListKehadiran returns the marks recorded for one meeting.
func (r *PresensiRepository) ListKehadiran(ctx context.Context, pertemuanID string) ([]*models.Kehadiran, error) {
	sql, args, err := r.sb.Select("id", "pertemuan_id", "mahasiswa_id", "status", "created_at", "updated_at").
		From("kehadiran").
		Where(squirrel.Eq{"pertemuan_id": pertemuanID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list kehadiran query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing kehadiran: %w", err)
	}
	defer rows.Close()

	var out []*models.Kehadiran
	for rows.Next() {
		e := &models.Kehadiran{}
		if err := rows.Scan(&e.ID, &e.PertemuanID, &e.MahasiswaID, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning kehadiran row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RekapKehadiran returns per-student attendance counts for a section.
func (r *PresensiRepository) RekapKehadiran(ctx context.Context, kelasID string) (map[string]map[string]int, error) {
	sql, args, err := r.sb.Select("k.mahasiswa_id", "k.status", "COUNT(*)").
		From("kehadiran k").
		Join("pertemuan p ON p.id = k.pertemuan_id").
		Where(squirrel.Eq{"p.kelas_id": kelasID}).
		GroupBy("k.mahasiswa_id", "k.status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build rekap kehadiran query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error building rekap kehadiran: %w", err)
	}
	defer rows.Close()

	rekap := make(map[string]map[string]int)
	for rows.Next() {
		var mahasiswaID, status string
		var n int
		if err := rows.Scan(&mahasiswaID, &status, &n); err != nil {
			return nil, fmt.Errorf("error scanning rekap row: %w", err)
		}
		if rekap[mahasiswaID] == nil {
			rekap[mahasiswaID] = make(map[string]int)
		}
		rekap[mahasiswaID][status] = n
	}
	return rekap, rows.Err()
}

// RekapByMahasiswa returns one student's attendance counts grouped by
// section.
func (r *PresensiRepository) RekapByMahasiswa(ctx context.Context, mahasiswaID string) (map[string]map[string]int, error) {
	sql, args, err := r.sb.Select("p.kelas_id", "k.status", "COUNT(*)").
		From("kehadiran k").
		Join("pertemuan p ON p.id = k.pertemuan_id").
		Where(squirrel.Eq{"k.mahasiswa_id": mahasiswaID}).
		GroupBy("p.kelas_id", "k.status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build rekap mahasiswa query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error building rekap mahasiswa: %w", err)
	}
	defer rows.Close()

	rekap := make(map[string]map[string]int)
	for rows.Next() {
		var kelasID, status string
		var n int
		if err := rows.Scan(&kelasID, &status, &n); err != nil {
			return nil, fmt.Errorf("error scanning rekap row: %w", err)
		}
		if rekap[kelasID] == nil {
			rekap[kelasID] = make(map[string]int)
		}
		rekap[kelasID][status] = n
	}
	return rekap, rows.Err()
}
