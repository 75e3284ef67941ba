// Package sheets backs the ledger with a Google Sheets tab, authenticated as
// a service account.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"storefront/internal/repository/ledger_repo"
)

type Config struct {
	SpreadsheetID string
	TabName       string
	ClientEmail   string
	PrivateKey    string
}

type sheetsLedgerRepository struct {
	service       *sheets.Service
	spreadsheetID string
	tabName       string
	logger        *zap.Logger
}

func NewLedgerRepository(ctx context.Context, cfg Config, l *zap.Logger) (ledger_repo.LedgerRepository, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("service account credentials are required")
	}

	conf := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &sheetsLedgerRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		tabName:       cfg.TabName,
		logger:        l,
	}, nil
}

func (r *sheetsLedgerRepository) ReadSerialColumn(ctx context.Context) ([]string, error) {
	readRange := fmt.Sprintf("'%s'!A1:A", r.tabName)
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		r.logger.Error("Failed to read ledger serial column", zap.String("range", readRange), zap.Error(err))
		return nil, fmt.Errorf("failed to read ledger range %s: %w", readRange, err)
	}

	cells := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			cells = append(cells, "")
			continue
		}
		cells = append(cells, fmt.Sprint(row[0]))
	}
	return cells, nil
}

func (r *sheetsLedgerRepository) AppendRow(ctx context.Context, row []interface{}) error {
	appendRange := fmt.Sprintf("'%s'!A:K", r.tabName)
	valueRange := &sheets.ValueRange{Values: [][]interface{}{row}}

	_, err := r.service.Spreadsheets.Values.Append(r.spreadsheetID, appendRange, valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		r.logger.Error("Failed to append ledger row", zap.String("range", appendRange), zap.Error(err))
		return fmt.Errorf("failed to append ledger row: %w", err)
	}
	return nil
}
