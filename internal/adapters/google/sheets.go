package google

import (
	"context"
	"fmt"
	"time"

	"github.com/shelfpub/shelfpub_backend/internal/apperrors"
	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
	"github.com/shelfpub/shelfpub_backend/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// sheetsService implements SpreadsheetSvcFacade against the Sheets API.
// The row range comes from the sheet spec loaded at startup.
type sheetsService struct {
	conf    *oauth2.Config
	spec    *domain.SheetSpec
	timeout time.Duration
}

// NewSheetsService creates the Google Sheets adapter.
func NewSheetsService(cfg *config.Config, spec *domain.SheetSpec) portssvc.SpreadsheetSvcFacade {
	return &sheetsService{
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Scopes:       []string{sheets.SpreadsheetsReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		spec:    spec,
		timeout: cfg.UpstreamTimeout,
	}
}

var _ portssvc.SpreadsheetSvcFacade = (*sheetsService)(nil)

// FetchRange reads the configured range from the user's sheet. The token
// source carries both tokens so an expired access token is renewed silently
// for the duration of the call; the renewed token is not persisted here.
func (s *sheetsService) FetchRange(ctx context.Context, accessToken, refreshToken, sheetID string) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ts := s.conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})

	service, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create sheets client: %v", apperrors.ErrUpstreamFetch, err)
	}

	response, err := service.Spreadsheets.Values.Get(sheetID, s.spec.Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read range %q from sheet %s: %v", apperrors.ErrUpstreamFetch, s.spec.Range, sheetID, err)
	}

	rows := make([][]string, 0, len(response.Values))
	for _, raw := range response.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
