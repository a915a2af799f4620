package provider

import (
	"fmt"
	"strings"

	"github.com/maekabu-office/internal/authz"
	"github.com/maekabu-office/internal/cache"
	"github.com/maekabu-office/internal/config"
	"github.com/maekabu-office/internal/idgen"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/queue"
	"github.com/maekabu-office/internal/repository"
	"github.com/maekabu-office/internal/service"
	"github.com/maekabu-office/internal/storage"

	"gorm.io/gorm"
)

// Container 依存関係コンテナ
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	Cache       *cache.Store
	ObjectStore storage.ObjectStore
	IDs         *idgen.Generator

	// Repositories
	EmployeeRepo        repository.EmployeeRepository
	CompanyRepo         repository.CompanyRepository
	ClientRepo          repository.ClientRepository
	CreatorRepo         repository.CreatorRepository
	PfCreatorRepo       repository.PfCreatorRepository
	AgencyRepo          repository.AgencyRepository
	InvoiceRepo         repository.InvoiceRepository
	VendorInvoiceRepo   repository.VendorInvoiceRepository
	BankTransactionRepo repository.BankTransactionRepository
	DepositRepo         repository.DepositRepository
	TransferRequestRepo repository.TransferRequestRepository

	// Services
	AuthzService           *authz.Service
	AuthService            *service.AuthService
	CaptchaService         *service.CaptchaService
	UploadService          *service.UploadService
	ClientService          *service.ClientService
	CompanyService         *service.CompanyService
	CreatorService         *service.CreatorService
	InvoiceService         *service.InvoiceService
	InvoiceDocumentService *service.InvoiceDocumentService
	VendorInvoiceService   *service.VendorInvoiceService
	BankTransactionService *service.BankTransactionService
	ReconciliationService  *service.ReconciliationService
	PaymentService         *service.PaymentService
}

// Option コンテナ生成時の差し替え
type Option func(c *Container)

// WithObjectStore ストレージを差し替える
func WithObjectStore(store storage.ObjectStore) Option {
	return func(c *Container) { c.ObjectStore = store }
}

// WithCache キャッシュを差し替える
func WithCache(store *cache.Store) Option {
	return func(c *Container) { c.Cache = store }
}

// NewContainer 接続済みの DB からコンテナを組み立てる
func NewContainer(cfg *config.Config, db *gorm.DB, opts ...Option) (*Container, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("provider: config and db are required")
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		return nil, err
	}
	ids, err := idgen.NewGenerator(cfg.IDGen.NodeID)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
		IDs:         ids,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Cache == nil {
		c.Cache = cache.NewStore(&cfg.Redis)
	}
	if c.ObjectStore == nil {
		c.ObjectStore = storage.New(cfg.Storage)
	}

	// 1. Repositories
	c.initRepositories()

	// 2. Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	db := c.DB
	c.EmployeeRepo = repository.NewEmployeeRepository(db)
	c.CompanyRepo = repository.NewCompanyRepository(db)
	c.ClientRepo = repository.NewClientRepository(db)
	c.CreatorRepo = repository.NewCreatorRepository(db)
	c.PfCreatorRepo = repository.NewPfCreatorRepository(db)
	c.AgencyRepo = repository.NewAgencyRepository(db)
	c.InvoiceRepo = repository.NewInvoiceRepository(db)
	c.VendorInvoiceRepo = repository.NewVendorInvoiceRepository(db)
	c.BankTransactionRepo = repository.NewBankTransactionRepository(db)
	c.DepositRepo = repository.NewDepositRepository(db)
	c.TransferRequestRepo = repository.NewTransferRequestRepository(db)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	cfg := c.Config
	companyID := strings.TrimSpace(cfg.Company.DefaultID)
	if companyID == "" {
		companyID = config.DefaultCompanyID
	}

	c.AuthService = service.NewAuthService(cfg, c.EmployeeRepo, c.Cache)
	c.CaptchaService = service.NewCaptchaService(cfg.Captcha)
	c.UploadService = service.NewUploadService(cfg.Storage, c.ObjectStore)
	c.ClientService = service.NewClientService(c.ClientRepo, companyID)
	c.CompanyService = service.NewCompanyService(c.CompanyRepo)
	c.CreatorService = service.NewCreatorService(c.CreatorRepo, c.PfCreatorRepo, c.AgencyRepo)
	c.InvoiceService = service.NewInvoiceService(c.InvoiceRepo, c.IDs, c.QueueClient, cfg.Billing.InvoiceNumberPrefix, companyID)
	c.InvoiceDocumentService = service.NewInvoiceDocumentService(c.InvoiceRepo, c.CompanyRepo, c.ObjectStore, cfg.Storage.DocumentBucket, companyID)
	c.VendorInvoiceService = service.NewVendorInvoiceService(c.VendorInvoiceRepo, companyID)
	c.BankTransactionService = service.NewBankTransactionService(c.BankTransactionRepo, cfg.Billing.DefaultBankAccount)
	c.ReconciliationService = service.NewReconciliationService(c.DB, c.BankTransactionRepo, c.DepositRepo, c.TransferRequestRepo)
	c.PaymentService = service.NewPaymentService(
		c.DepositRepo,
		c.TransferRequestRepo,
		c.PfCreatorRepo,
		c.BankTransactionRepo,
		c.CreatorService,
		c.ReconciliationService,
		cfg.Billing.DefaultBankAccount,
	)
	return nil
}

// Close 外部接続を閉じる
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if closer, ok := c.ObjectStore.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Warnw("provider_close_object_store_failed", "error", err)
		}
	}
	if err := c.Cache.Close(); err != nil {
		logger.Warnw("provider_close_cache_failed", "error", err)
	}
}
