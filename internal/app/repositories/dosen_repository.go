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

var dosenColumns = []string{
	"id", "user_id", "nidn", "nip", "nama", "email", "prodi_id",
	"pendidikan", "jabatan", "no_hp", "created_at", "updated_at",
}

// DosenRepository handles lecturer record database operations
type DosenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDosenRepository creates a new DosenRepository
func NewDosenRepository(db *pgxpool.Pool) *DosenRepository {
	return &DosenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanDosen(row pgx.Row) (*models.Dosen, error) {
	d := &models.Dosen{}
	err := row.Scan(
		&d.ID, &d.UserID, &d.NIDN, &d.NIP, &d.Nama, &d.Email, &d.ProdiID,
		&d.Pendidikan, &d.Jabatan, &d.NoHP, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Create inserts a lecturer record.
func (r *DosenRepository) Create(ctx context.Context, d *models.Dosen) error {
	sql, args, err := r.sb.Insert("dosen").
		Columns("id", "user_id", "nidn", "nip", "nama", "email", "prodi_id", "pendidikan", "jabatan", "no_hp").
		Values(d.ID, d.UserID, d.NIDN, d.NIP, d.Nama, d.Email, d.ProdiID, d.Pendidikan, d.Jabatan, d.NoHP).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create dosen query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrNIDNAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProdiNotFound
		}
		return fmt.Errorf("error creating dosen: %w", err)
	}
	return nil
}

// GetByID retrieves a lecturer by ID.
func (r *DosenRepository) GetByID(ctx context.Context, id string) (*models.Dosen, error) {
	return r.getByField(ctx, "id", id)
}

// GetByNIDN retrieves a lecturer by NIDN.
func (r *DosenRepository) GetByNIDN(ctx context.Context, nidn string) (*models.Dosen, error) {
	return r.getByField(ctx, "nidn", nidn)
}

// GetByNIP retrieves a lecturer by NIP.
func (r *DosenRepository) GetByNIP(ctx context.Context, nip string) (*models.Dosen, error) {
	return r.getByField(ctx, "nip", nip)
}

// GetByUserID retrieves a lecturer by their account ID.
func (r *DosenRepository) GetByUserID(ctx context.Context, userID string) (*models.Dosen, error) {
	return r.getByField(ctx, "user_id", userID)
}

func (r *DosenRepository) getByField(ctx context.Context, field, value string) (*models.Dosen, error) {
	sql, args, err := r.sb.Select(dosenColumns...).
		From("dosen").
		Where(squirrel.Eq{field: value}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get dosen query: %w", err)
	}

	d, err := scanDosen(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDosenNotFound
		}
		return nil, fmt.Errorf("error getting dosen: %w", err)
	}
	return d, nil
}

// NamesByIDs returns id -> nama for the given dosen IDs.
func (r *DosenRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	sql, args, err := r.sb.Select("id", "nama").
		From("dosen").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build dosen names query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching dosen names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, nama string
		if err := rows.Scan(&id, &nama); err != nil {
			return nil, fmt.Errorf("error scanning dosen name row: %w", err)
		}
		names[id] = nama
	}
	return names, rows.Err()
}

// List returns lecturers within the prodi scope. A nil filter means
// unrestricted.
func (r *DosenRepository) List(ctx context.Context, prodiIDs []string) ([]*models.Dosen, error) {
	if prodiIDs != nil && len(prodiIDs) == 0 {
		return []*models.Dosen{}, nil
	}
	builder := r.sb.Select(dosenColumns...).From("dosen").OrderBy("nama")
	if prodiIDs != nil {
		builder = builder.Where(squirrel.Eq{"prodi_id": prodiIDs})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list dosen query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing dosen: %w", err)
	}
	defer rows.Close()

	var out []*models.Dosen
	for rows.Next() {
		d, err := scanDosen(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning dosen row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Update modifies a lecturer record.
func (r *DosenRepository) Update(ctx context.Context, d *models.Dosen) error {
	sql, args, err := r.sb.Update("dosen").
		Set("nama", d.Nama).
		Set("nip", d.NIP).
		Set("prodi_id", d.ProdiID).
		Set("pendidikan", d.Pendidikan).
		Set("jabatan", d.Jabatan).
		Set("no_hp", d.NoHP).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update dosen query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating dosen: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDosenNotFound
	}
	return nil
}

// Delete removes a lecturer record.
func (r *DosenRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("dosen").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete dosen query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting dosen: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDosenNotFound
	}
	return nil
}

// CountByProdi returns the number of lecturers in the prodi scope.
func (r *DosenRepository) CountByProdi(ctx context.Context, prodiIDs []string) (int64, error) {
	if prodiIDs != nil && len(prodiIDs) == 0 {
		return 0, nil
	}
	builder := r.sb.Select("COUNT(*)").From("dosen")
	if prodiIDs != nil {
		builder = builder.Where(squirrel.Eq{"prodi_id": prodiIDs})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count dosen query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting dosen: %w", err)
	}
	return n, nil
}
