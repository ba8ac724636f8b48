package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/apolozov/shortlink/internal/models"
)

const urlColumns = "id, user_id, short_code, original_url, click_count, created_at"

type PostgresRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

func NewPostgresRepository(ctx context.Context, dsn, migrationsDir string) (*PostgresRepository, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := runMigrations(dsn, migrationsDir); err != nil {
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

func runMigrations(dsn, migrationsDir string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func (p *PostgresRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	query, args, err := p.sb.
		Select("count(*)").
		From("urls").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int64
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("query row: %w", err)
	}

	return count, nil
}

func (p *PostgresRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	query, args, err := p.sb.
		Select("1").
		From("urls").
		Where(squirrel.Eq{"short_code": code}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = p.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query row: %w", err)
	}

	return true, nil
}

func (p *PostgresRepository) Insert(ctx context.Context, userID, code, originalURL string) (models.URL, error) {
	query, args, err := p.sb.
		Insert("urls").
		Columns("id", "user_id", "short_code", "original_url").
		Values(uuid.New().String(), userID, code, originalURL).
		Suffix("RETURNING " + urlColumns).
		ToSql()
	if err != nil {
		return models.URL{}, fmt.Errorf("build query: %w", err)
	}

	rec, err := p.scanURL(p.pool.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return models.URL{}, ErrCodeTaken
		}
		return models.URL{}, fmt.Errorf("insert url: %w", err)
	}

	return rec, nil
}

func (p *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.URL, error) {
	query, args, err := p.sb.
		Select(urlColumns).
		From("urls").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query urls: %w", err)
	}
	defer rows.Close()

	urls := make([]models.URL, 0)
	for rows.Next() {
		rec, err := p.scanURL(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		urls = append(urls, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return urls, nil
}

func (p *PostgresRepository) DeleteByIDAndUser(ctx context.Context, id, userID string) (string, error) {
	query, args, err := p.sb.
		Delete("urls").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	var deletedID string
	err = p.pool.QueryRow(ctx, query, args...).Scan(&deletedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete url: %w", err)
	}

	return deletedID, nil
}

func (p *PostgresRepository) GetByCode(ctx context.Context, code string) (models.URL, error) {
	query, args, err := p.sb.
		Select(urlColumns).
		From("urls").
		Where(squirrel.Eq{"short_code": code}).
		ToSql()
	if err != nil {
		return models.URL{}, fmt.Errorf("build query: %w", err)
	}

	rec, err := p.scanURL(p.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.URL{}, ErrNotFound
	}
	if err != nil {
		return models.URL{}, fmt.Errorf("query row: %w", err)
	}

	return rec, nil
}

func (p *PostgresRepository) SetClickCount(ctx context.Context, id string, clicks int64) error {
	query, args, err := p.sb.
		Update("urls").
		Set("click_count", clicks).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update click count: %w", err)
	}

	return nil
}

func (p *PostgresRepository) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresRepository) Close() {
	p.pool.Close()
}

func (p *PostgresRepository) scanURL(row pgx.Row) (models.URL, error) {
	var rec models.URL
	err := row.Scan(&rec.ID, &rec.UserID, &rec.ShortCode, &rec.OriginalURL, &rec.ClickCount, &rec.CreatedAt)
	return rec, err
}
