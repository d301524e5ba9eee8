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

var mahasiswaColumns = []string{
	"id", "user_id", "nim", "nama", "email", "prodi_id", "angkatan", "status",
	"dosen_pa_id", "jenis_kelamin", "tempat_lahir", "tanggal_lahir", "alamat", "no_hp",
	"created_at", "updated_at",
}

// MahasiswaRepository handles student record database operations
type MahasiswaRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMahasiswaRepository creates a new MahasiswaRepository
func NewMahasiswaRepository(db *pgxpool.Pool) *MahasiswaRepository {
	return &MahasiswaRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanMahasiswa(row pgx.Row) (*models.Mahasiswa, error) {
	m := &models.Mahasiswa{}
	err := row.Scan(
		&m.ID, &m.UserID, &m.NIM, &m.Nama, &m.Email, &m.ProdiID, &m.Angkatan, &m.Status,
		&m.DosenPAID, &m.JenisKelamin, &m.TempatLahir, &m.TanggalLahir, &m.Alamat, &m.NoHP,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a student record.
func (r *MahasiswaRepository) Create(ctx context.Context, m *models.Mahasiswa) error {
	sql, args, err := r.sb.Insert("mahasiswa").
		Columns("id", "user_id", "nim", "nama", "email", "prodi_id", "angkatan", "status",
			"dosen_pa_id", "jenis_kelamin", "tempat_lahir", "tanggal_lahir", "alamat", "no_hp").
		Values(m.ID, m.UserID, m.NIM, m.Nama, m.Email, m.ProdiID, m.Angkatan, m.Status,
			m.DosenPAID, m.JenisKelamin, m.TempatLahir, m.TanggalLahir, m.Alamat, m.NoHP).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create mahasiswa query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrNIMAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProdiNotFound
		}
		return fmt.Errorf("error creating mahasiswa: %w", err)
	}
	return nil
}

// GetByID retrieves a student by ID.
func (r *MahasiswaRepository) GetByID(ctx context.Context, id string) (*models.Mahasiswa, error) {
	return r.getByField(ctx, "id", id)
}

// GetByNIM retrieves a student by NIM.
func (r *MahasiswaRepository) GetByNIM(ctx context.Context, nim string) (*models.Mahasiswa, error) {
	return r.getByField(ctx, "nim", nim)
}

// GetByUserID retrieves a student by their account ID.
func (r *MahasiswaRepository) GetByUserID(ctx context.Context, userID string) (*models.Mahasiswa, error) {
	return r.getByField(ctx, "user_id", userID)
}

func (r *MahasiswaRepository) getByField(ctx context.Context, field, value string) (*models.Mahasiswa, error) {
	sql, args, err := r.sb.Select(mahasiswaColumns...).
		From("mahasiswa").
		Where(squirrel.Eq{field: value}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get mahasiswa query: %w", err)
	}

	m, err := scanMahasiswa(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMahasiswaNotFound
		}
		return nil, fmt.Errorf("error getting mahasiswa: %w", err)
	}
	return m, nil
}

// GetByIDs batch-fetches students for decoration.
func (r *MahasiswaRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Mahasiswa, error) {
	if len(ids) == 0 {
		return map[string]*models.Mahasiswa{}, nil
	}
	sql, args, err := r.sb.Select(mahasiswaColumns...).
		From("mahasiswa").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build mahasiswa batch query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error batch fetching mahasiswa: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*models.Mahasiswa, len(ids))
	for rows.Next() {
		m, err := scanMahasiswa(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning mahasiswa row: %w", err)
		}
		out[m.ID] = m
	}
	return out, rows.Err()
}

// List returns students within the prodi scope, optionally filtered
// by angkatan and status. A nil prodiIDs filter means unrestricted.
func (r *MahasiswaRepository) List(ctx context.Context, prodiIDs []string, angkatan int, status string) ([]*models.Mahasiswa, error) {
	if prodiIDs != nil && len(prodiIDs) == 0 {
		return []*models.Mahasiswa{}, nil
	}
	builder := r.sb.Select(mahasiswaColumns...).From("mahasiswa").OrderBy("nim")
	if prodiIDs != nil {
		builder = builder.Where(squirrel.Eq{"prodi_id": prodiIDs})
	}
	if angkatan > 0 {
		builder = builder.Where(squirrel.Eq{"angkatan": angkatan})
	}
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list mahasiswa query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing mahasiswa: %w", err)
	}
	defer rows.Close()

	var out []*models.Mahasiswa
	for rows.Next() {
		m, err := scanMahasiswa(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning mahasiswa row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListBiodataKosong returns students whose biodata is still incomplete.
func (r *MahasiswaRepository) ListBiodataKosong(ctx context.Context, prodiIDs []string) ([]*models.Mahasiswa, error) {
	if prodiIDs != nil && len(prodiIDs) == 0 {
		return []*models.Mahasiswa{}, nil
	}
	builder := r.sb.Select(mahasiswaColumns...).
		From("mahasiswa").
		Where("(jenis_kelamin IS NULL OR tempat_lahir IS NULL OR tanggal_lahir IS NULL OR alamat IS NULL OR no_hp IS NULL)").
		OrderBy("nim")
	if prodiIDs != nil {
		builder = builder.Where(squirrel.Eq{"prodi_id": prodiIDs})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build biodata kosong query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing mahasiswa without biodata: %w", err)
	}
	defer rows.Close()

	var out []*models.Mahasiswa
	for rows.Next() {
		m, err := scanMahasiswa(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning mahasiswa row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListByDosenPA returns the advisees of one dosen.
func (r *MahasiswaRepository) ListByDosenPA(ctx context.Context, dosenID string) ([]*models.Mahasiswa, error) {
	sql, args, err := r.sb.Select(mahasiswaColumns...).
		From("mahasiswa").
		Where(squirrel.Eq{"dosen_pa_id": dosenID}).
		OrderBy("nim").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list advisees query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing advisees: %w", err)
	}
	defer rows.Close()

	var out []*models.Mahasiswa
	for rows.Next() {
		m, err := scanMahasiswa(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning mahasiswa row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListActiveIDsByProdi returns the IDs of active students in a prodi.
// Used by bulk billing.
func (r *MahasiswaRepository) ListActiveIDsByProdi(ctx context.Context, prodiID string) ([]string, error) {
	sql, args, err := r.sb.Select("id").
		From("mahasiswa").
		Where(squirrel.Eq{"prodi_id": prodiID, "status": models.MahasiswaAktif}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build active mahasiswa query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing active mahasiswa: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning mahasiswa id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update modifies a student record.
func (r *MahasiswaRepository) Update(ctx context.Context, m *models.Mahasiswa) error {
	sql, args, err := r.sb.Update("mahasiswa").
		Set("nama", m.Nama).
		Set("prodi_id", m.ProdiID).
		Set("angkatan", m.Angkatan).
		Set("status", m.Status).
		Set("dosen_pa_id", m.DosenPAID).
		Set("jenis_kelamin", m.JenisKelamin).
		Set("tempat_lahir", m.TempatLahir).
		Set("tanggal_lahir", m.TanggalLahir).
		Set("alamat", m.Alamat).
		Set("no_hp", m.NoHP).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": m.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update mahasiswa query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating mahasiswa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMahasiswaNotFound
	}
	return nil
}

// UpdateFields applies a sparse biodata patch. Callers validate keys
// against models.BiodataEditableFields first.
func (r *MahasiswaRepository) UpdateFields(ctx context.Context, id string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	builder := r.sb.Update("mahasiswa").Set("updated_at", squirrel.Expr("NOW()"))
	for k, v := range fields {
		builder = builder.Set(k, v)
	}
	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build patch mahasiswa query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error patching mahasiswa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMahasiswaNotFound
	}
	return nil
}

// Delete removes a student record.
func (r *MahasiswaRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("mahasiswa").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete mahasiswa query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting mahasiswa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMahasiswaNotFound
	}
	return nil
}

// CountByProdi returns the number of students in the prodi scope.
func (r *MahasiswaRepository) CountByProdi(ctx context.Context, prodiIDs []string) (int64, error) {
	if prodiIDs != nil && len(prodiIDs) == 0 {
		return 0, nil
	}
	builder := r.sb.Select("COUNT(*)").From("mahasiswa")
	if prodiIDs != nil {
		builder = builder.Where(squirrel.Eq{"prodi_id": prodiIDs})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count mahasiswa query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting mahasiswa: %w", err)
	}
	return n, nil
}

// CountByProdiStatus counts students in the prodi scope holding one
// enrollment status.
func (r *MahasiswaRepository) CountByProdiStatus(ctx context.Context, prodiIDs []string, status string) (int64, error) {
	if prodiIDs != nil && len(prodiIDs) == 0 {
		return 0, nil
	}
	builder := r.sb.Select("COUNT(*)").From("mahasiswa").Where(squirrel.Eq{"status": status})
	if prodiIDs != nil {
		builder = builder.Where(squirrel.Eq{"prodi_id": prodiIDs})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count mahasiswa query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting mahasiswa: %w", err)
	}
	return n, nil
}
