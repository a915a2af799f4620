package main

import (
	"time"

	"github.com/maekabu-office/internal/config"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 開発用のサンプルデータを投入する。何度実行しても重複しない
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.IsRelease() {
		stdLog.Fatalf("release モードではサンプルデータを投入できません")
	}

	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.URL, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false)
	if err != nil {
		stdLog.Fatalf("DB 接続に失敗しました: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("マイグレーションに失敗しました: %v", err)
	}

	companyID := cfg.Company.DefaultID
	if companyID == "" {
		companyID = config.DefaultCompanyID
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return seed(tx, companyID, cfg.Billing.DefaultBankAccount)
	}); err != nil {
		stdLog.Fatalf("サンプルデータの投入に失敗しました: %v", err)
	}
	logger.Infow("seed_done", "company_id", companyID)
}

func seed(tx *gorm.DB, companyID, bankAccount string) error {
	if bankAccount == "" {
		bankAccount = "MAIN002"
	}
	upsert := func(value interface{}) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(value).Error
	}

	company := models.Company{
		ID:                        companyID,
		CompanyName:               "株式会社まえかぶ",
		PostalCode:                "150-0001",
		Address:                   "東京都渋谷区神宮前1-1-1",
		RepresentativeName:        "代表 太郎",
		RepresentativeTitle:       "代表取締役",
		InvoiceRegistrationNumber: "T1234567890123",
		BankName:                  "みずほ銀行",
		BankBranch:                "渋谷支店",
		BankAccountType:           "普通",
		BankAccountNumber:         "1234567",
		BankAccountName:           "カ）マエカブ",
	}
	if err := upsert(&company); err != nil {
		return err
	}

	clients := []models.Client{
		{ID: "00000000-0000-4000-8000-000000000101", CompanyID: companyID, ClientName: "株式会社サンプル広告", IsCustomer: true, Email: "billing@sample-ad.example.com"},
		{ID: "00000000-0000-4000-8000-000000000102", CompanyID: companyID, ClientName: "撮影スタジオ合同会社", IsVendor: true, BankName: "三井住友銀行", BankAccountNumber: "7654321"},
	}
	if err := upsert(&clients); err != nil {
		return err
	}

	agencies := []models.Agency{
		{AgencyID: 1, AgencyName: "パートナーエージェンシー"},
	}
	if err := upsert(&agencies); err != nil {
		return err
	}

	creators := []models.FanCreator{
		{ID: 1, Status: "契約中", RealName: "山田 花子", CreatorName: "はなこ", BankName: "楽天銀行", AccountNumber: "1111111"},
		{ID: 2, Status: "契約中", RealName: "鈴木 一郎", CreatorName: "いちろう", BankName: "PayPay銀行", AccountNumber: "2222222"},
	}
	if err := upsert(&creators); err != nil {
		return err
	}

	agencyID := "1"
	creatorOne, creatorTwo := uint(1), uint(2)
	pfCreators := []models.PfCreator{
		{
			ID:                 "00000000-0000-4000-8000-000000000201",
			FanCreatorID:       &creatorOne,
			Platform:           models.PlatformFantia,
			CreatorName:        "はなこ",
			CreatorRate:        models.NewRate("0.7"),
			AgencyID:           &agencyID,
			AgencyRate:         models.NewRate("0.1"),
			DistributionMethod: models.DistributionCrBased,
		},
		{
			ID:           "00000000-0000-4000-8000-000000000202",
			FanCreatorID: &creatorTwo,
			Platform:     models.PlatformMyfans,
			CreatorName:  "いちろう",
			CreatorRate:  models.NewRate("0.8"),
		},
	}
	if err := upsert(&pfCreators); err != nil {
		return err
	}

	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	deposits := []models.PlatformDeposit{
		{ID: "00000000-0000-4000-8000-000000000301", FanPfCreatorID: &pfCreators[0].ID, Platform: models.PlatformFantia, Year: year, Month: month, RewardAmount: models.NewMoney(100000), PaymentAmountWithTax: models.NewMoney(100000), CreatorRate: models.NewRate("0.7")},
		{ID: "00000000-0000-4000-8000-000000000302", FanPfCreatorID: &pfCreators[1].ID, Platform: models.PlatformMyfans, Year: year, Month: month, RewardAmount: models.NewMoney(50000), PaymentAmountWithTax: models.NewMoney(50000), CreatorRate: models.NewRate("0.8")},
	}
	if err := upsert(&deposits); err != nil {
		return err
	}

	transactions := []models.BankTransaction{
		{ID: "00000000-0000-4000-8000-000000000401", TransactionDate: now, TransactionType: "deposit", BankAccount: bankAccount, CounterpartName: "ファンティア", Amount: models.NewMoney(100000)},
		{ID: "00000000-0000-4000-8000-000000000402", TransactionDate: now, TransactionType: "deposit", BankAccount: bankAccount, CounterpartName: "マイファンズ", Amount: models.NewMoney(50000)},
		{ID: "00000000-0000-4000-8000-000000000403", TransactionDate: now, TransactionType: "withdrawal", BankAccount: bankAccount, CounterpartName: "ヤマダ ハナコ", Amount: models.NewMoney(70000)},
	}
	return upsert(&transactions)
}
