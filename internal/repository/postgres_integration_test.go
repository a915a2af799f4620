//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/maekabu-office/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB PostgreSQL 結合テスト用 DB を初期化する
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.TransferRequest{},
		&models.PlatformDeposit{},
		&models.BankTransaction{},
		&models.PfCreator{},
		&models.Employee{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresTransferRequestSearchAndLink(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	creator := &models.PfCreator{
		Platform:           models.PlatformFantia,
		CreatorName:        "Mio Sample",
		CreatorRate:        models.NewRate("0.5"),
		AgencyRate:         models.NewRate("0.2"),
		DistributionMethod: models.DistributionDepositMinusCr,
	}
	if err := NewPfCreatorRepository(db).Create(creator); err != nil {
		t.Fatalf("create creator failed: %v", err)
	}

	bank := &models.BankTransaction{
		TransactionDate: time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC),
		TransactionType: "withdrawal",
		BankAccount:     "MAIN002",
		Amount:          models.NewMoney(50000),
	}
	if err := db.Create(bank).Error; err != nil {
		t.Fatalf("create bank transaction failed: %v", err)
	}

	transfers := NewTransferRequestRepository(db)
	request := &models.TransferRequest{
		FanPfCreatorID: creator.ID,
		WorkYear:       2024,
		WorkMonth:      3,
		DepositYear:    2024,
		DepositMonth:   5,
		DepositAmount:  models.NewMoney(100000),
	}
	if err := transfers.Create(request); err != nil {
		t.Fatalf("create transfer request failed: %v", err)
	}

	rows, err := transfers.List(TransferRequestListFilter{Search: "mio"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ILIKE search should be case-insensitive, got %d rows", len(rows))
	}
	if rows[0].PfCreator.DistributionMethod != models.DistributionDepositMinusCr {
		t.Fatalf("distribution method mismatch: %q", rows[0].PfCreator.DistributionMethod)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		ok, err := transfers.WithTx(tx).LinkBankTransaction(request.ID, bank.ID, bank.TransactionDate)
		if err != nil {
			return err
		}
		if !ok {
			t.Fatalf("link should update one row")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("link failed: %v", err)
	}

	ok, err := transfers.LinkBankTransaction(request.ID, bank.ID, bank.TransactionDate)
	if err != nil || ok {
		t.Fatalf("second link must be a no-op, ok=%v err=%v", ok, err)
	}
}
