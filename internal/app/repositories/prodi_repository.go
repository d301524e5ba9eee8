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

var prodiColumns = []string{"id", "kode", "nama", "jenjang", "fakultas_id", "created_at", "updated_at"}

// ProdiRepository handles study program database operations. It also
// backs the access-scope resolver's directory lookups.
type ProdiRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProdiRepository creates a new ProdiRepository
func NewProdiRepository(db *pgxpool.Pool) *ProdiRepository {
	return &ProdiRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanProdi(row pgx.Row) (*models.Prodi, error) {
	p := &models.Prodi{}
	err := row.Scan(&p.ID, &p.Kode, &p.Nama, &p.Jenjang, &p.FakultasID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a study program.
func (r *ProdiRepository) Create(ctx context.Context, p *models.Prodi) error {
	sql, args, err := r.sb.Insert("prodi").
		Columns("id", "kode", "nama", "jenjang", "fakultas_id").
		Values(p.ID, p.Kode, p.Nama, p.Jenjang, p.FakultasID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create prodi query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrProdiAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrFakultasNotFound
		}
		return fmt.Errorf("error creating prodi: %w", err)
	}
	return nil
}

// GetByID retrieves a study program by ID.
func (r *ProdiRepository) GetByID(ctx context.Context, id string) (*models.Prodi, error) {
	sql, args, err := r.sb.Select(prodiColumns...).
		From("prodi").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get prodi query: %w", err)
	}

	p, err := scanProdi(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProdiNotFound
		}
		return nil, fmt.Errorf("error getting prodi: %w", err)
	}
	return p, nil
}

// List returns study programs, optionally restricted to the given IDs.
// A nil filter lists everything; an empty non-nil filter lists nothing.
func (r *ProdiRepository) List(ctx context.Context, filterIDs []string) ([]*models.Prodi, error) {
	if filterIDs != nil && len(filterIDs) == 0 {
		return []*models.Prodi{}, nil
	}
	builder := r.sb.Select(prodiColumns...).From("prodi").OrderBy("kode")
	if filterIDs != nil {
		builder = builder.Where(squirrel.Eq{"id": filterIDs})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list prodi query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing prodi: %w", err)
	}
	defer rows.Close()

	var out []*models.Prodi
	for rows.Next() {
		p, err := scanProdi(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning prodi row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// NamesByIDs returns id -> nama for the given prodi IDs.
func (r *ProdiRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	sql, args, err := r.sb.Select("id", "nama").
		From("prodi").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build prodi names query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching prodi names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, nama string
		if err := rows.Scan(&id, &nama); err != nil {
			return nil, fmt.Errorf("error scanning prodi name row: %w", err)
		}
		names[id] = nama
	}
	return names, rows.Err()
}

// ProdiIDsByFakultas returns the IDs of every prodi under the faculty.
func (r *ProdiRepository) ProdiIDsByFakultas(ctx context.Context, fakultasID string) ([]string, error) {
	sql, args, err := r.sb.Select("id").
		From("prodi").
		Where(squirrel.Eq{"fakultas_id": fakultasID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build prodi by fakultas query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing prodi by fakultas: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning prodi id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FakultasIDByProdi returns the owning faculty of the prodi.
func (r *ProdiRepository) FakultasIDByProdi(ctx context.Context, prodiID string) (string, error) {
	sql, args, err := r.sb.Select("fakultas_id").
		From("prodi").
		Where(squirrel.Eq{"id": prodiID}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build fakultas by prodi query: %w", err)
	}

	var fakultasID string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&fakultasID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrProdiNotFound
		}
		return "", fmt.Errorf("error getting fakultas for prodi: %w", err)
	}
	return fakultasID, nil
}

// Update modifies a study program.
func (r *ProdiRepository) Update(ctx context.Context, p *models.Prodi) error {
	sql, args, err := r.sb.Update("prodi").
		Set("kode", p.Kode).
		Set("nama", p.Nama).
		Set("jenjang", p.Jenjang).
		Set("fakultas_id", p.FakultasID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update prodi query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrProdiAlreadyExists
		}
		return fmt.Errorf("error updating prodi: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProdiNotFound
	}
	return nil
}

// Delete removes a study program.
func (r *ProdiRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("prodi").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete prodi query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting prodi: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProdiNotFound
	}
	return nil
}

// Count returns the number of prodi rows.
func (r *ProdiRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM prodi").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting prodi: %w", err)
	}
	return n, nil
}
