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
)

// AuthRequestRepository handles the password reset and profile photo
// approval queues.
type AuthRequestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAuthRequestRepository creates a new AuthRequestRepository
func NewAuthRequestRepository(db *pgxpool.Pool) *AuthRequestRepository {
	return &AuthRequestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateResetRequest queues a forgot-password request.
func (r *AuthRequestRepository) CreateResetRequest(ctx context.Context, req *models.PasswordResetRequest) error {
	sql, args, err := r.sb.Insert("password_reset_requests").
		Columns("id", "user_id", "password_baru", "status").
		Values(req.ID, req.UserID, req.PasswordBaru, req.Status).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create reset request query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating reset request: %w", err)
	}
	return nil
}

// GetResetRequest retrieves one reset request joined to its account.
func (r *AuthRequestRepository) GetResetRequest(ctx context.Context, id string) (*models.PasswordResetRequest, error) {
	sql, args, err := r.sb.Select("r.id", "r.user_id", "u.email", "u.nama", "u.role", "r.password_baru", "r.status", "r.created_at", "r.processed_at").
		From("password_reset_requests r").
		Join("users u ON u.id = r.user_id").
		Where(squirrel.Eq{"r.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get reset request query: %w", err)
	}

	req := &models.PasswordResetRequest{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&req.ID, &req.UserID, &req.Email, &req.Nama, &req.Role, &req.PasswordBaru, &req.Status, &req.CreatedAt, &req.ProcessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResetRequestNotFound
		}
		return nil, fmt.Errorf("error getting reset request: %w", err)
	}
	return req, nil
}

// ListResetRequests returns the queue, optionally filtered by status.
func (r *AuthRequestRepository) ListResetRequests(ctx context.Context, status string) ([]*models.PasswordResetRequest, error) {
	builder := r.sb.Select("r.id", "r.user_id", "u.email", "u.nama", "u.role", "r.password_baru", "r.status", "r.created_at", "r.processed_at").
		From("password_reset_requests r").
		Join("users u ON u.id = r.user_id").
		OrderBy("r.created_at")
	if status != "" {
		builder = builder.Where(squirrel.Eq{"r.status": status})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list reset requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing reset requests: %w", err)
	}
	defer rows.Close()

	var out []*models.PasswordResetRequest
	for rows.Next() {
		req := &models.PasswordResetRequest{}
		if err := rows.Scan(&req.ID, &req.UserID, &req.Email, &req.Nama, &req.Role, &req.PasswordBaru, &req.Status, &req.CreatedAt, &req.ProcessedAt); err != nil {
			return nil, fmt.Errorf("error scanning reset request row: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// MarkResetProcessed stamps the verdict on a reset request.
func (r *AuthRequestRepository) MarkResetProcessed(ctx context.Context, id, status string) error {
	sql, args, err := r.sb.Update("password_reset_requests").
		Set("status", status).
		Set("processed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark reset processed query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking reset request processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResetRequestNotFound
	}
	return nil
}

// CreateFotoRequest queues a profile photo change for review.
func (r *AuthRequestRepository) CreateFotoRequest(ctx context.Context, req *models.FotoProfilRequest) error {
	sql, args, err := r.sb.Insert("foto_profil_requests").
		Columns("id", "user_id", "foto_url", "status").
		Values(req.ID, req.UserID, req.FotoURL, req.Status).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create foto request query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating foto request: %w", err)
	}
	return nil
}

// GetFotoRequest retrieves one photo request joined to its account.
func (r *AuthRequestRepository) GetFotoRequest(ctx context.Context, id string) (*models.FotoProfilRequest, error) {
	sql, args, err := r.sb.Select("r.id", "r.user_id", "u.nama", "u.role", "r.foto_url", "r.status", "r.created_at", "r.processed_at").
		From("foto_profil_requests r").
		Join("users u ON u.id = r.user_id").
		Where(squirrel.Eq{"r.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get foto request query: %w", err)
	}

	req := &models.FotoProfilRequest{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&req.ID, &req.UserID, &req.Nama, &req.Role, &req.FotoURL, &req.Status, &req.CreatedAt, &req.ProcessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFotoRequestNotFound
		}
		return nil, fmt.Errorf("error getting foto request: %w", err)
	}
	return req, nil
}

// ListFotoRequests returns the photo review queue.
func (r *AuthRequestRepository) ListFotoRequests(ctx context.Context, status string) ([]*models.FotoProfilRequest, error) {
	builder := r.sb.Select("r.id", "r.user_id", "u.nama", "u.role", "r.foto_url", "r.status", "r.created_at", "r.processed_at").
		From("foto_profil_requests r").
		Join("users u ON u.id = r.user_id").
		OrderBy("r.created_at")
	if status != "" {
		builder = builder.Where(squirrel.Eq{"r.status": status})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list foto requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing foto requests: %w", err)
	}
	defer rows.Close()

	var out []*models.FotoProfilRequest
	for rows.Next() {
		req := &models.FotoProfilRequest{}
		if err := rows.Scan(&req.ID, &req.UserID, &req.Nama, &req.Role, &req.FotoURL, &req.Status, &req.CreatedAt, &req.ProcessedAt); err != nil {
			return nil, fmt.Errorf("error scanning foto request row: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// ListFotoRequestsByUser returns one account's photo request history.
func (r *AuthRequestRepository) ListFotoRequestsByUser(ctx context.Context, userID string) ([]*models.FotoProfilRequest, error) {
	sql, args, err := r.sb.Select("r.id", "r.user_id", "u.nama", "u.role", "r.foto_url", "r.status", "r.created_at", "r.processed_at").
		From("foto_profil_requests r").
		Join("users u ON u.id = r.user_id").
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list foto requests by user query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing foto requests by user: %w", err)
	}
	defer rows.Close()

	var out []*models.FotoProfilRequest
	for rows.Next() {
		req := &models.FotoProfilRequest{}
		if err := rows.Scan(&req.ID, &req.UserID, &req.Nama, &req.Role, &req.FotoURL, &req.Status, &req.CreatedAt, &req.ProcessedAt); err != nil {
			return nil, fmt.Errorf("error scanning foto request row: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// MarkFotoProcessed stamps the verdict on a photo request.
func (r *AuthRequestRepository) MarkFotoProcessed(ctx context.Context, id, status string) error {
	sql, args, err := r.sb.Update("foto_profil_requests").
		Set("status", status).
		Set("processed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark foto processed query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking foto request processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFotoRequestNotFound
	}
	return nil
}
