package link_repo

import (
	"context"

	"storefront/internal/domain"
)

// LinkRepository reads the product-link catalog. The backing store is the
// source of truth; the link cache mirrors ListAll and falls back to
// FindLinkByTitle on a miss.
type LinkRepository interface {
	ListAll(ctx context.Context) ([]domain.ProductLink, error)
	// FindLinkByTitle returns the download link for title, or "" when no
	// row matches. Absence is not an error.
	FindLinkByTitle(ctx context.Context, title string) (string, error)
}
