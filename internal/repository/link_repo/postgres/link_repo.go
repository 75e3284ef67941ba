package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository/link_repo"
)

type pgLinkRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewLinkRepository(db *sql.DB, l *zap.Logger) link_repo.LinkRepository {
	return &pgLinkRepository{db: db, logger: l}
}

func (r *pgLinkRepository) ListAll(ctx context.Context) ([]domain.ProductLink, error) {
	var links []domain.ProductLink
	query := `SELECT title, download_link FROM product_links`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query product links", zap.Error(err))
		return nil, fmt.Errorf("failed to list product links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var link domain.ProductLink
		if err := rows.Scan(&link.Title, &link.DownloadLink); err != nil {
			r.logger.Error("Failed to scan product link row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan product link row: %w", err)
		}
		links = append(links, link)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Rows error for product links", zap.Error(err))
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return links, nil
}

func (r *pgLinkRepository) FindLinkByTitle(ctx context.Context, title string) (string, error) {
	var link string
	query := `SELECT download_link FROM product_links WHERE title = $1 LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, title).Scan(&link)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		r.logger.Error("Failed to find product link by title", zap.String("title", title), zap.Error(err))
		return "", fmt.Errorf("failed to find product link for title %s: %w", title, err)
	}
	return link, nil
}
