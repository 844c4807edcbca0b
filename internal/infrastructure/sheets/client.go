package sheets

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"vendor-onboarding.backend/internal/config"
	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/pkg/document"
	"vendor-onboarding.backend/pkg/logger"
	"vendor-onboarding.backend/pkg/metrics"
	"vendor-onboarding.backend/pkg/redis"
)

const cacheKey = "prospects:sheet:rows"

var (
	cacheGet = redis.GetJSON
	cacheSet = redis.SetJSON
	// cacheEnabled is false when no Redis client was initialized
	cacheEnabled = func() bool { return redis.GetClient() != nil }
)

// Client reads the prospect spreadsheet published as CSV
type Client struct {
	url        string
	cacheTTL   time.Duration
	httpClient *http.Client
}

// NewClient builds a client from the sheets config. An empty CSV URL disables it.
func NewClient(cfg config.SheetsConfig) *Client {
	return &Client{
		url:        cfg.CSVURL,
		cacheTTL:   cfg.CacheTTL,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// Enabled reports whether a sheet URL is configured
func (c *Client) Enabled() bool {
	return c.url != ""
}

// FindByDocument returns the first row whose pf_cpf matches, then the first
// whose pj_cnpj matches, comparing digits only.
func (c *Client) FindByDocument(ctx context.Context, doc string) (*entities.SheetRow, error) {
	clean := document.Normalize(doc)
	if clean == "" || !c.Enabled() {
		return nil, nil
	}

	rows, err := c.rows(ctx)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if document.Normalize(rows[i].PfCpf) == clean {
			return &rows[i], nil
		}
	}
	for i := range rows {
		if document.Normalize(rows[i].PjCnpj) == clean {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// Refresh downloads the sheet and replaces the cached rows
func (c *Client) Refresh(ctx context.Context) (int, error) {
	if !c.Enabled() {
		return 0, nil
	}
	rows, err := c.fetch(ctx)
	if err != nil {
		return 0, err
	}
	c.store(ctx, rows)
	return len(rows), nil
}

func (c *Client) rows(ctx context.Context) ([]entities.SheetRow, error) {
	if cacheEnabled() {
		var cached []entities.SheetRow
		found, err := cacheGet(ctx, cacheKey, &cached)
		if err != nil {
			logger.Warn(ctx, "Prospect sheet cache read failed", zap.Error(err))
		} else if found {
			metrics.ObserveSheetFetch(metrics.ResultCacheHit)
			return cached, nil
		}
		metrics.ObserveSheetFetch(metrics.ResultCacheMiss)
	}

	rows, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, rows)
	return rows, nil
}

func (c *Client) store(ctx context.Context, rows []entities.SheetRow) {
	if !cacheEnabled() {
		return
	}
	if err := cacheSet(ctx, cacheKey, rows, c.cacheTTL); err != nil {
		logger.Warn(ctx, "Prospect sheet cache write failed", zap.Error(err))
	}
}

func (c *Client) fetch(ctx context.Context) ([]entities.SheetRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, domainerrors.NewStorageError("build sheet request", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveSheetFetch(metrics.ResultUnavailable)
		return nil, domainerrors.NewStorageError("fetch prospect sheet", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveSheetFetch(metrics.ResultUnavailable)
		return nil, domainerrors.NewStorageError("fetch prospect sheet", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	rows, err := ParseCSV(resp.Body)
	if err != nil {
		metrics.ObserveSheetFetch(metrics.ResultError)
		return nil, domainerrors.NewStorageError("parse prospect sheet", err)
	}
	metrics.ObserveSheetFetch(metrics.ResultOK)
	return rows, nil
}

var columns = map[string]func(*entities.SheetRow) *string{
	"person_type":                  func(r *entities.SheetRow) *string { return &r.PersonType },
	"pf_full_name":                 func(r *entities.SheetRow) *string { return &r.PfFullName },
	"pf_cpf":                       func(r *entities.SheetRow) *string { return &r.PfCpf },
	"pf_brand_name":                func(r *entities.SheetRow) *string { return &r.PfBrandName },
	"pj_cnpj":                      func(r *entities.SheetRow) *string { return &r.PjCnpj },
	"pj_legal_representative_name": func(r *entities.SheetRow) *string { return &r.PjLegalRepresentativeName },
	"pj_legal_representative_cpf":  func(r *entities.SheetRow) *string { return &r.PjLegalRepresentativeCpf },
	"pj_state_registration":        func(r *entities.SheetRow) *string { return &r.PjStateRegistration },
	"pj_brand_name":                func(r *entities.SheetRow) *string { return &r.PjBrandName },
	"contact_phone":                func(r *entities.SheetRow) *string { return &r.ContactPhone },
	"contact_email":                func(r *entities.SheetRow) *string { return &r.ContactEmail },
	"address_full":                 func(r *entities.SheetRow) *string { return &r.AddressFull },
	"address_zipcode":              func(r *entities.SheetRow) *string { return &r.AddressZipcode },
	"address_city":                 func(r *entities.SheetRow) *string { return &r.AddressCity },
	"address_state":                func(r *entities.SheetRow) *string { return &r.AddressState },
	"bank_name":                    func(r *entities.SheetRow) *string { return &r.BankName },
	"bank_agency":                  func(r *entities.SheetRow) *string { return &r.BankAgency },
	"bank_account":                 func(r *entities.SheetRow) *string { return &r.BankAccount },
	"pix_key":                      func(r *entities.SheetRow) *string { return &r.PixKey },
	"pix_favored_name":             func(r *entities.SheetRow) *string { return &r.PixFavoredName },
	"terms_accepted":               func(r *entities.SheetRow) *string { return &r.TermsAccepted },
	"type_tend":                    func(r *entities.SheetRow) *string { return &r.TypeTend },
}

// ParseCSV reads a header row followed by data rows. Unknown columns are
// ignored and rows with every known cell blank are skipped.
func ParseCSV(r io.Reader) ([]entities.SheetRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []entities.SheetRow{}, nil
	}
	if err != nil {
		return nil, err
	}

	setters := make([]func(*entities.SheetRow) *string, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		setters[i] = columns[name]
	}

	rows := []entities.SheetRow{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		var row entities.SheetRow
		filled := false
		for i, cell := range record {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				filled = true
			}
			*setters[i](&row) = cell
		}
		if filled {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
