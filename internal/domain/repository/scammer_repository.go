package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"scamdb/internal/common"
	"scamdb/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ScammerRepository interface {
	Create(ctx context.Context, scammer *model.Scammer) error
	Update(ctx context.Context, scammer *model.Scammer) error
	FindByID(ctx context.Context, id string) (*model.Scammer, error)
	FindByDiscordID(ctx context.Context, discordID string) (*model.Scammer, error)
	List(ctx context.Context, skip, limit int, searchTerm string) ([]model.Scammer, error)
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status model.ScammerStatus) (int, error)
}

type pgScammerRepository struct {
	db *sql.DB
}

func NewPgScammerRepository(db *sql.DB) ScammerRepository {
	return &pgScammerRepository{db: db}
}

const scammerColumns = `id, discord_id, discord_name, scam_method, description, status, created_at, updated_at`

func (r *pgScammerRepository) Create(ctx context.Context, s *model.Scammer) error {
	query := `INSERT INTO scammers (` + scammerColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.DiscordID, s.DiscordName, s.ScamMethod, s.Description, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for discord_id
			return fmt.Errorf("scammer with this discord_id already exists: %w", common.ErrDuplicate)
		}
		return fmt.Errorf("pgScammerRepository.Create: %w", err)
	}
	return nil
}

func (r *pgScammerRepository) Update(ctx context.Context, s *model.Scammer) error {
	query := `UPDATE scammers SET
	            discord_id = $1, discord_name = $2, scam_method = $3,
	            description = $4, status = $5, updated_at = $6
	          WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		s.DiscordID, s.DiscordName, s.ScamMethod, s.Description, s.Status, s.UpdatedAt, s.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("scammer with this discord_id already exists: %w", common.ErrDuplicate)
		}
		return fmt.Errorf("pgScammerRepository.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgScammerRepository.Update: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgScammerRepository) FindByID(ctx context.Context, id string) (*model.Scammer, error) {
	query := `SELECT ` + scammerColumns + ` FROM scammers WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgScammerRepository) FindByDiscordID(ctx context.Context, discordID string) (*model.Scammer, error) {
	query := `SELECT ` + scammerColumns + ` FROM scammers WHERE discord_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, discordID), "FindByDiscordID")
}

func (r *pgScammerRepository) scanOne(row *sql.Row, op string) (*model.Scammer, error) {
	s := &model.Scammer{}
	err := row.Scan(&s.ID, &s.DiscordID, &s.DiscordName, &s.ScamMethod,
		&s.Description, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgScammerRepository.%s: %w", op, err)
	}
	return s, nil
}

// List returns a page of records, newest first. When searchTerm is non-empty
// it matches as a case-insensitive substring of discord_id or discord_name.
func (r *pgScammerRepository) List(ctx context.Context, skip, limit int, searchTerm string) ([]model.Scammer, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + scammerColumns + ` FROM scammers`)

	args := []interface{}{}
	if searchTerm != "" {
		query.WriteString(` WHERE discord_id ILIKE $1 OR discord_name ILIKE $1`)
		args = append(args, "%"+searchTerm+"%")
	}
	query.WriteString(fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2))
	args = append(args, limit, skip)

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("pgScammerRepository.List: %w", err)
	}
	defer rows.Close()

	scammers := []model.Scammer{}
	for rows.Next() {
		var s model.Scammer
		if err := rows.Scan(&s.ID, &s.DiscordID, &s.DiscordName, &s.ScamMethod,
			&s.Description, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgScammerRepository.List scan: %w", err)
		}
		scammers = append(scammers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgScammerRepository.List rows: %w", err)
	}
	return scammers, nil
}

func (r *pgScammerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM scammers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgScammerRepository.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgScammerRepository.Delete: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgScammerRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scammers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgScammerRepository.CountAll: %w", err)
	}
	return count, nil
}

func (r *pgScammerRepository) CountByStatus(ctx context.Context, status model.ScammerStatus) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scammers WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgScammerRepository.CountByStatus: %w", err)
	}
	return count, nil
}
