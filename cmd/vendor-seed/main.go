package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"vendor-onboarding.backend/internal/config"
	"vendor-onboarding.backend/internal/domain/entities"
	"vendor-onboarding.backend/internal/infrastructure/datasources/postgres"
	"vendor-onboarding.backend/internal/infrastructure/repositories"
	"vendor-onboarding.backend/pkg/document"
)

type vendorSeedRuntime interface {
	Upsert(ctx context.Context, vendorID string, status entities.VendorStatus) error
	GetByVendorID(ctx context.Context, vendorID string) (*entities.VendorStatusRecord, error)
}

type vendorSeedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (vendorSeedRuntime, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultVendorSeedDeps() vendorSeedDeps {
	return vendorSeedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (vendorSeedRuntime, io.Closer, error) {
			sqlDB, err := postgres.NewConnection(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			db, err := postgres.OpenGorm(sqlDB)
			if err != nil {
				_ = sqlDB.Close()
				return nil, nil, fmt.Errorf("failed to init gorm: %w", err)
			}
			return repositories.NewVendorStatusRepository(db), sqlDB, nil
		},
		out: os.Stdout,
	}
}

// parseVendor validates the document and status flags
func parseVendor(rawDoc, rawStatus string) (string, entities.VendorStatus, error) {
	doc := document.Normalize(rawDoc)
	if document.KindOf(doc) == document.KindUnknown {
		return "", "", fmt.Errorf("--document must have 11 (CPF) or 14 (CNPJ) digits, got %q", rawDoc)
	}
	status := entities.VendorStatus(rawStatus)
	if !status.Valid() {
		return "", "", fmt.Errorf("--status %q is not a known vendor status", rawStatus)
	}
	return doc, status, nil
}

func runVendorSeed(args []string, deps vendorSeedDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		deps.prepare = defaultVendorSeedDeps().prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("vendor-seed", flag.ContinueOnError)
	docFlag := fs.String("document", "", "vendor CPF or CNPJ, any formatting (required)")
	statusFlag := fs.String("status", string(entities.VendorStatusSelected), "vendor status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	vendorID, status, err := parseVendor(*docFlag, *statusFlag)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	runtime, closer, err := deps.prepare(deps.loadCfg())
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	if err := runtime.Upsert(ctx, vendorID, status); err != nil {
		return fmt.Errorf("failed to upsert vendor %s: %w", document.Format(vendorID), err)
	}
	rec, err := runtime.GetByVendorID(ctx, vendorID)
	if err != nil {
		return fmt.Errorf("failed to read back vendor %s: %w", document.Format(vendorID), err)
	}

	_, _ = fmt.Fprintf(deps.out, "vendor_id=%s\n", rec.VendorID)
	_, _ = fmt.Fprintf(deps.out, "status=%s\n", rec.Status)
	if rec.MerchantID != nil {
		_, _ = fmt.Fprintf(deps.out, "merchant_id=%s\n", rec.MerchantID.String())
	}
	return nil
}

func main() {
	if err := runVendorSeed(os.Args[1:], defaultVendorSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
