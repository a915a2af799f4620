package service

import (
	"fmt"
	"strings"

	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/repository"
)

// ClientInput 取引先の登録・更新内容
type ClientInput struct {
	CompanyID         string `json:"company_id"`
	ClientName        string `json:"client_name"`
	ClientNameKana    string `json:"client_name_kana"`
	PostalCode        string `json:"postal_code"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	ContactPerson     string `json:"contact_person"`
	Department        string `json:"department"`
	IsCustomer        *bool  `json:"is_customer"`
	IsVendor          *bool  `json:"is_vendor"`
	BankName          string `json:"bank_name"`
	BankBranch        string `json:"bank_branch"`
	BankAccountType   string `json:"bank_account_type"`
	BankAccountNumber string `json:"bank_account_number"`
	BankAccountName   string `json:"bank_account_name"`
	Notes             string `json:"notes"`
}

// ClientService 取引先管理
type ClientService struct {
	clientRepo       repository.ClientRepository
	defaultCompanyID string
}

// NewClientService 取引先サービスを生成する
func NewClientService(clientRepo repository.ClientRepository, defaultCompanyID string) *ClientService {
	return &ClientService{clientRepo: clientRepo, defaultCompanyID: defaultCompanyID}
}

// List 取引先一覧
func (s *ClientService) List(filter repository.ClientListFilter) ([]models.Client, error) {
	return s.clientRepo.List(filter)
}

// Get 取引先を取得する
func (s *ClientService) Get(id string) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

// Create 取引先を登録する。createdBy はログイン中の社員
func (s *ClientService) Create(input ClientInput, createdBy string) (*models.Client, error) {
	client := &models.Client{IsCustomer: true}
	if err := applyClientInput(client, input); err != nil {
		return nil, err
	}
	if client.CompanyID == "" {
		client.CompanyID = s.defaultCompanyID
	}
	if createdBy = strings.TrimSpace(createdBy); createdBy != "" {
		client.CreatedBy = &createdBy
	}
	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// Update 取引先を更新する
func (s *ClientService) Update(id string, input ClientInput) (*models.Client, error) {
	client, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyClientInput(client, input); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete 取引先を削除する
func (s *ClientService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.clientRepo.Delete(strings.TrimSpace(id))
}

func applyClientInput(client *models.Client, input ClientInput) error {
	name := strings.TrimSpace(input.ClientName)
	if name == "" {
		return fmt.Errorf("%w: client_name is required", ErrInvalidInput)
	}
	if companyID := strings.TrimSpace(input.CompanyID); companyID != "" {
		client.CompanyID = companyID
	}
	client.ClientName = name
	client.ClientNameKana = strings.TrimSpace(input.ClientNameKana)
	client.PostalCode = strings.TrimSpace(input.PostalCode)
	client.Address = strings.TrimSpace(input.Address)
	client.Phone = strings.TrimSpace(input.Phone)
	client.Email = strings.TrimSpace(input.Email)
	client.ContactPerson = strings.TrimSpace(input.ContactPerson)
	client.Department = strings.TrimSpace(input.Department)
	if input.IsCustomer != nil {
		client.IsCustomer = *input.IsCustomer
	}
	if input.IsVendor != nil {
		client.IsVendor = *input.IsVendor
	}
	client.BankName = strings.TrimSpace(input.BankName)
	client.BankBranch = strings.TrimSpace(input.BankBranch)
	client.BankAccountType = strings.TrimSpace(input.BankAccountType)
	client.BankAccountNumber = strings.TrimSpace(input.BankAccountNumber)
	client.BankAccountName = strings.TrimSpace(input.BankAccountName)
	client.Notes = input.Notes
	return nil
}

// CompanyInput 自社情報の登録・更新内容
type CompanyInput struct {
	CompanyName               string `json:"company_name"`
	PostalCode                string `json:"postal_code"`
	Address                   string `json:"address"`
	Phone                     string `json:"phone"`
	Email                     string `json:"email"`
	RepresentativeName        string `json:"representative_name"`
	RepresentativeTitle       string `json:"representative_title"`
	InvoiceRegistrationNumber string `json:"invoice_registration_number"`
	BankName                  string `json:"bank_name"`
	BankBranch                string `json:"bank_branch"`
	BankAccountType           string `json:"bank_account_type"`
	BankAccountNumber         string `json:"bank_account_number"`
	BankAccountName           string `json:"bank_account_name"`
}

// CompanyService 自社情報管理
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService 自社情報サービスを生成する
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// List 会社名順の一覧
func (s *CompanyService) List() ([]models.Company, error) {
	return s.companyRepo.List()
}

// Get 会社を取得する
func (s *CompanyService) Get(id string) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}

// Create 会社を登録する
func (s *CompanyService) Create(input CompanyInput) (*models.Company, error) {
	company := &models.Company{}
	if err := applyCompanyInput(company, input); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return company, nil
}

// Update 会社を更新する
func (s *CompanyService) Update(id string, input CompanyInput) (*models.Company, error) {
	company, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyCompanyInput(company, input); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete 会社を削除する
func (s *CompanyService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.companyRepo.Delete(strings.TrimSpace(id))
}

func applyCompanyInput(company *models.Company, input CompanyInput) error {
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return fmt.Errorf("%w: company_name is required", ErrInvalidInput)
	}
	company.CompanyName = name
	company.PostalCode = strings.TrimSpace(input.PostalCode)
	company.Address = strings.TrimSpace(input.Address)
	company.Phone = strings.TrimSpace(input.Phone)
	company.Email = strings.TrimSpace(input.Email)
	company.RepresentativeName = strings.TrimSpace(input.RepresentativeName)
	company.RepresentativeTitle = strings.TrimSpace(input.RepresentativeTitle)
	company.InvoiceRegistrationNumber = strings.TrimSpace(input.InvoiceRegistrationNumber)
	company.BankName = strings.TrimSpace(input.BankName)
	company.BankBranch = strings.TrimSpace(input.BankBranch)
	company.BankAccountType = strings.TrimSpace(input.BankAccountType)
	company.BankAccountNumber = strings.TrimSpace(input.BankAccountNumber)
	company.BankAccountName = strings.TrimSpace(input.BankAccountName)
	return nil
}
