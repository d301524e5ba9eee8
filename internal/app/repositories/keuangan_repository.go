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

var tagihanColumns = []string{
	"id", "mahasiswa_id", "tahun_akademik_id", "kategori_ukt_id", "nominal", "dibayar",
	"status", "jatuh_tempo", "created_at", "updated_at",
}

var pembayaranColumns = []string{
	"id", "tagihan_id", "mahasiswa_id", "jumlah", "metode_pembayaran", "bukti_url",
	"status", "catatan", "tanggal_bayar", "verified_at", "created_at", "updated_at",
}

// KeuanganRepository handles tuition category, billing and payment
// database operations.
type KeuanganRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewKeuanganRepository creates a new KeuanganRepository
func NewKeuanganRepository(db *pgxpool.Pool) *KeuanganRepository {
	return &KeuanganRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateKategori inserts a tuition category.
func (r *KeuanganRepository) CreateKategori(ctx context.Context, k *models.KategoriUKT) error {
	sql, args, err := r.sb.Insert("kategori_ukt").
		Columns("id", "nama", "nominal", "deskripsi").
		Values(k.ID, k.Nama, k.Nominal, k.Deskripsi).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create kategori query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating kategori ukt: %w", err)
	}
	return nil
}

// GetKategori retrieves a tuition category.
func (r *KeuanganRepository) GetKategori(ctx context.Context, id string) (*models.KategoriUKT, error) {
	sql, args, err := r.sb.Select("id", "nama", "nominal", "deskripsi", "created_at", "updated_at").
		From("kategori_ukt").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get kategori query: %w", err)
	}

	k := &models.KategoriUKT{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&k.ID, &k.Nama, &k.Nominal, &k.Deskripsi, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrKategoriUKTNotFound
		}
		return nil, fmt.Errorf("error getting kategori ukt: %w", err)
	}
	return k, nil
}

// ListKategori returns all tuition categories.
func (r *KeuanganRepository) ListKategori(ctx context.Context) ([]*models.KategoriUKT, error) {
	sql, args, err := r.sb.Select("id", "nama", "nominal", "deskripsi", "created_at", "updated_at").
		From("kategori_ukt").
		OrderBy("nominal").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list kategori query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing kategori ukt: %w", err)
	}
	defer rows.Close()

	var out []*models.KategoriUKT
	for rows.Next() {
		k := &models.KategoriUKT{}
		if err := rows.Scan(&k.ID, &k.Nama, &k.Nominal, &k.Deskripsi, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning kategori row: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// KategoriNamesByIDs returns id -> nama for tuition categories.
func (r *KeuanganRepository) KategoriNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	sql, args, err := r.sb.Select("id", "nama").
		From("kategori_ukt").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build kategori names query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching kategori names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, nama string
		if err := rows.Scan(&id, &nama); err != nil {
			return nil, fmt.Errorf("error scanning kategori name row: %w", err)
		}
		names[id] = nama
	}
	return names, rows.Err()
}

// UpdateKategori modifies a tuition category.
func (r *KeuanganRepository) UpdateKategori(ctx context.Context, k *models.KategoriUKT) error {
	sql, args, err := r.sb.Update("kategori_ukt").
		Set("nama", k.Nama).
		Set("nominal", k.Nominal).
		Set("deskripsi", k.Deskripsi).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": k.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update kategori query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating kategori ukt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrKategoriUKTNotFound
	}
	return nil
}

// DeleteKategori removes a tuition category that no bill references.
func (r *KeuanganRepository) DeleteKategori(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("kategori_ukt").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete kategori query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrKategoriUKTInUse
		}
		return fmt.Errorf("error deleting kategori ukt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrKategoriUKTNotFound
	}
	return nil
}

func scanTagihan(row pgx.Row) (*models.Tagihan, error) {
	t := &models.Tagihan{}
	err := row.Scan(
		&t.ID, &t.MahasiswaID, &t.TahunAkademikID, &t.KategoriUKTID, &t.Nominal, &t.Dibayar,
		&t.Status, &t.JatuhTempo, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTagihan issues a bill. A unique index on (mahasiswa_id,
// tahun_akademik_id) keeps one bill per student per term.
func (r *KeuanganRepository) CreateTagihan(ctx context.Context, t *models.Tagihan) error {
	sql, args, err := r.sb.Insert("tagihan").
		Columns("id", "mahasiswa_id", "tahun_akademik_id", "kategori_ukt_id", "nominal", "dibayar", "status", "jatuh_tempo").
		Values(t.ID, t.MahasiswaID, t.TahunAkademikID, t.KategoriUKTID, t.Nominal, t.Dibayar, t.Status, t.JatuhTempo).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create tagihan query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrTagihanAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referensi tagihan tidak valid")
		}
		return fmt.Errorf("error creating tagihan: %w", err)
	}
	return nil
}

// GetTagihan retrieves a bill by ID.
func (r *KeuanganRepository) GetTagihan(ctx context.Context, id string) (*models.Tagihan, error) {
	sql, args, err := r.sb.Select(tagihanColumns...).
		From("tagihan").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get tagihan query: %w", err)
	}

	t, err := scanTagihan(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTagihanNotFound
		}
		return nil, fmt.Errorf("error getting tagihan: %w", err)
	}
	return t, nil
}

// ListTagihan returns bills filtered by term and/or student.
func (r *KeuanganRepository) ListTagihan(ctx context.Context, tahunAkademikID, mahasiswaID string) ([]*models.Tagihan, error) {
	builder := r.sb.Select(tagihanColumns...).From("tagihan").OrderBy("created_at DESC")
	if tahunAkademikID != "" {
		builder = builder.Where(squirrel.Eq{"tahun_akademik_id": tahunAkademikID})
	}
	if mahasiswaID != "" {
		builder = builder.Where(squirrel.Eq{"mahasiswa_id": mahasiswaID})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list tagihan query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing tagihan: %w", err)
	}
	defer rows.Close()

	var out []*models.Tagihan
	for rows.Next() {
		t, err := scanTagihan(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning tagihan row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteTagihan removes an unpaid bill.
func (r *KeuanganRepository) DeleteTagihan(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("tagihan").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete tagihan query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrTagihanHasPembayaran
		}
		return fmt.Errorf("error deleting tagihan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTagihanNotFound
	}
	return nil
}

func scanPembayaran(row pgx.Row) (*models.Pembayaran, error) {
	p := &models.Pembayaran{}
	err := row.Scan(
		&p.ID, &p.TagihanID, &p.MahasiswaID, &p.Jumlah, &p.MetodePembayaran, &p.BuktiURL,
		&p.Status, &p.Catatan, &p.TanggalBayar, &p.VerifiedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePembayaran records a submitted payment, pending verification.
func (r *KeuanganRepository) CreatePembayaran(ctx context.Context, p *models.Pembayaran) error {
	sql, args, err := r.sb.Insert("pembayaran").
		Columns("id", "tagihan_id", "mahasiswa_id", "jumlah", "metode_pembayaran", "bukti_url", "status", "tanggal_bayar").
		Values(p.ID, p.TagihanID, p.MahasiswaID, p.Jumlah, p.MetodePembayaran, p.BuktiURL, p.Status, p.TanggalBayar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create pembayaran query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrTagihanNotFound
		}
		return fmt.Errorf("error creating pembayaran: %w", err)
	}
	return nil
}

// GetPembayaran retrieves a payment by ID.
func (r *KeuanganRepository) GetPembayaran(ctx context.Context, id string) (*models.Pembayaran, error) {
	sql, args, err := r.sb.Select(pembayaranColumns...).
		From("pembayaran").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get pembayaran query: %w", err)
	}

	p, err := scanPembayaran(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPembayaranNotFound
		}
		return nil, fmt.Errorf("error getting pembayaran: %w", err)
	}
	return p, nil
}

// ListPembayaran returns payments filtered by status and/or student.
func (r *KeuanganRepository) ListPembayaran(ctx context.Context, status, mahasiswaID string) ([]*models.Pembayaran, error) {
	builder := r.sb.Select(pembayaranColumns...).From("pembayaran").OrderBy("created_at DESC")
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}
	if mahasiswaID != "" {
		builder = builder.Where(squirrel.Eq{"mahasiswa_id": mahasiswaID})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list pembayaran query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing pembayaran: %w", err)
	}
	defer rows.Close()

	var out []*models.Pembayaran
	for rows.Next() {
		p, err := scanPembayaran(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning pembayaran row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// VerifyPembayaran applies the admin verdict and, on approval, rolls
// the amount into the bill inside one transaction.
func (r *KeuanganRepository) VerifyPembayaran(ctx context.Context, pembayaranID, status string, catatan *string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Select(pembayaranColumns...).
			From("pembayaran").
			Where(squirrel.Eq{"id": pembayaranID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build lock pembayaran query: %w", err)
		}

		p, err := scanPembayaran(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrPembayaranNotFound
			}
			return fmt.Errorf("error locking pembayaran: %w", err)
		}
		if p.Status != models.PembayaranPending {
			return apperrors.ErrPembayaranNotPending
		}

		updateSQL, updateArgs, err := r.sb.Update("pembayaran").
			Set("status", status).
			Set("catatan", catatan).
			Set("verified_at", squirrel.Expr("NOW()")).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": pembayaranID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build verify pembayaran query: %w", err)
		}
		if _, err := tx.Exec(ctx, updateSQL, updateArgs...); err != nil {
			return fmt.Errorf("error verifying pembayaran: %w", err)
		}

		if status != models.PembayaranVerified {
			return nil
		}

		// roll the verified amount into the bill and recompute status
		_, err = tx.Exec(ctx, `
			UPDATE tagihan SET
				dibayar = dibayar + $1,
				status = CASE
					WHEN dibayar + $1 >= nominal THEN 'lunas'
					WHEN dibayar + $1 > 0 THEN 'sebagian'
					ELSE status
				END,
				updated_at = NOW()
			WHERE id = $2`, p.Jumlah, p.TagihanID)
		if err != nil {
			return fmt.Errorf("error applying pembayaran to tagihan: %w", err)
		}
		return nil
	})
}

// RekapTagihan aggregates billing totals for a term.
func (r *KeuanganRepository) RekapTagihan(ctx context.Context, tahunAkademikID string) (*models.Tagihan, map[string]int, error) {
	var totalNominal, totalDibayar float64
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(SUM(nominal), 0), COALESCE(SUM(dibayar), 0) FROM tagihan WHERE tahun_akademik_id = $1",
		tahunAkademikID).Scan(&totalNominal, &totalDibayar)
	if err != nil {
		return nil, nil, fmt.Errorf("error aggregating tagihan: %w", err)
	}

	rows, err := r.db.Query(ctx,
		"SELECT status, COUNT(*) FROM tagihan WHERE tahun_akademik_id = $1 GROUP BY status",
		tahunAkademikID)
	if err != nil {
		return nil, nil, fmt.Errorf("error counting tagihan by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, nil, fmt.Errorf("error scanning tagihan count: %w", err)
		}
		counts[status] = n
	}

	totals := &models.Tagihan{Nominal: totalNominal, Dibayar: totalDibayar}
	return totals, counts, rows.Err()
}
