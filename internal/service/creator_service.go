package service

import (
	"fmt"
	"strings"

	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/repository"
)

// FanCreatorInput クリエイター本人の登録・更新内容
type FanCreatorInput struct {
	ID                uint    `json:"id"`
	Status            string  `json:"status"`
	RealName          string  `json:"real_name"`
	CreatorName       string  `json:"creator_name"`
	InvoiceNumber     string  `json:"invoice_number"`
	LoginID           string  `json:"login_id"`
	TransferFeeBurden string  `json:"transfer_fee_burden"`
	BankCode          string  `json:"bank_code"`
	BankName          string  `json:"bank_name"`
	BranchCode        string  `json:"branch_code"`
	BranchName        string  `json:"branch_name"`
	AccountType       string  `json:"account_type"`
	AccountHolder     string  `json:"account_holder"`
	AccountNumber     string  `json:"account_number"`
	Address           string  `json:"address"`
	Phone             string  `json:"phone"`
	Email             string  `json:"email"`
	Birthday          *string `json:"birthday"`
}

// PfCreatorInput プラットフォーム登録の登録・更新内容
type PfCreatorInput struct {
	ID                 string      `json:"id"`
	FanCreatorID       *uint       `json:"fan_creator_id"`
	PlatformID         string      `json:"platform_id"`
	Platform           string      `json:"platform" binding:"platform"`
	CreatorName        string      `json:"creator_name"`
	URL                string      `json:"url"`
	Email              string      `json:"email"`
	Manager            string      `json:"manager"`
	RegistrationType   string      `json:"registration_type"`
	CreatorRate        models.Rate `json:"creator_rate"`
	AgencyID           *string     `json:"agency_id"`
	AgencyRate         models.Rate `json:"agency_rate"`
	DistributionMethod string      `json:"distribution_method" binding:"distribution_method"`
}

// CreatorService クリエイター・プラットフォーム登録・代理店
type CreatorService struct {
	creatorRepo   repository.CreatorRepository
	pfCreatorRepo repository.PfCreatorRepository
	agencyRepo    repository.AgencyRepository
}

// NewCreatorService クリエイターサービスを生成する
func NewCreatorService(
	creatorRepo repository.CreatorRepository,
	pfCreatorRepo repository.PfCreatorRepository,
	agencyRepo repository.AgencyRepository,
) *CreatorService {
	return &CreatorService{
		creatorRepo:   creatorRepo,
		pfCreatorRepo: pfCreatorRepo,
		agencyRepo:    agencyRepo,
	}
}

// ListFanCreators 本名順の一覧
func (s *CreatorService) ListFanCreators() ([]models.FanCreator, error) {
	return s.creatorRepo.List()
}

// ListPfCreatorOptions 選択肢用の一覧。platform=all は絞り込まない
func (s *CreatorService) ListPfCreatorOptions(platform string) ([]repository.PfCreatorOption, error) {
	return s.pfCreatorRepo.ListOptions(platform)
}

// CreateFanCreator クリエイターを登録する
func (s *CreatorService) CreateFanCreator(input FanCreatorInput) (*models.FanCreator, error) {
	creator := &models.FanCreator{}
	if err := applyFanCreatorInput(creator, input); err != nil {
		return nil, err
	}
	if err := s.creatorRepo.Create(creator); err != nil {
		return nil, err
	}
	return creator, nil
}

// UpdateFanCreator 本文の id で対象を特定して更新する
func (s *CreatorService) UpdateFanCreator(input FanCreatorInput) (*models.FanCreator, error) {
	if input.ID == 0 {
		return nil, ErrIDRequired
	}
	creator, err := s.creatorRepo.GetByID(input.ID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, ErrCreatorNotFound
	}
	if err := applyFanCreatorInput(creator, input); err != nil {
		return nil, err
	}
	if err := s.creatorRepo.Update(creator); err != nil {
		return nil, err
	}
	return creator, nil
}

// DeleteFanCreator クリエイターを削除する
func (s *CreatorService) DeleteFanCreator(id uint) error {
	if id == 0 {
		return ErrIDRequired
	}
	return s.creatorRepo.Delete(id)
}

func applyFanCreatorInput(creator *models.FanCreator, input FanCreatorInput) error {
	realName := strings.TrimSpace(input.RealName)
	creatorName := strings.TrimSpace(input.CreatorName)
	if realName == "" && creatorName == "" {
		return fmt.Errorf("%w: real_name or creator_name is required", ErrInvalidInput)
	}
	creator.Status = strings.TrimSpace(input.Status)
	creator.RealName = realName
	creator.CreatorName = creatorName
	creator.InvoiceNumber = strings.TrimSpace(input.InvoiceNumber)
	creator.LoginID = strings.TrimSpace(input.LoginID)
	creator.TransferFeeBurden = strings.TrimSpace(input.TransferFeeBurden)
	creator.BankCode = strings.TrimSpace(input.BankCode)
	creator.BankName = strings.TrimSpace(input.BankName)
	creator.BranchCode = strings.TrimSpace(input.BranchCode)
	creator.BranchName = strings.TrimSpace(input.BranchName)
	creator.AccountType = strings.TrimSpace(input.AccountType)
	creator.AccountHolder = strings.TrimSpace(input.AccountHolder)
	creator.AccountNumber = strings.TrimSpace(input.AccountNumber)
	creator.Address = strings.TrimSpace(input.Address)
	creator.Phone = strings.TrimSpace(input.Phone)
	creator.Email = strings.TrimSpace(input.Email)
	creator.Birthday = nil
	if input.Birthday != nil && strings.TrimSpace(*input.Birthday) != "" {
		birthday := strings.TrimSpace(*input.Birthday)
		creator.Birthday = &birthday
	}
	return nil
}

// ListPfCreators 登録の新しい順
func (s *CreatorService) ListPfCreators(filter repository.PfCreatorListFilter) ([]models.PfCreator, error) {
	return s.pfCreatorRepo.List(filter)
}

// CreatePfCreator プラットフォーム登録を作成する
func (s *CreatorService) CreatePfCreator(input PfCreatorInput) (*models.PfCreator, error) {
	creator := &models.PfCreator{}
	if err := applyPfCreatorInput(creator, input); err != nil {
		return nil, err
	}
	if err := s.pfCreatorRepo.Create(creator); err != nil {
		return nil, err
	}
	return creator, nil
}

// UpdatePfCreator 本文の id で対象を特定して更新する
func (s *CreatorService) UpdatePfCreator(input PfCreatorInput) (*models.PfCreator, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, ErrIDRequired
	}
	creator, err := s.pfCreatorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, ErrCreatorNotFound
	}
	if err := applyPfCreatorInput(creator, input); err != nil {
		return nil, err
	}
	if err := s.pfCreatorRepo.Update(creator); err != nil {
		return nil, err
	}
	return creator, nil
}

// DeletePfCreator プラットフォーム登録を削除する
func (s *CreatorService) DeletePfCreator(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrIDRequired
	}
	return s.pfCreatorRepo.Delete(id)
}

func applyPfCreatorInput(creator *models.PfCreator, input PfCreatorInput) error {
	platform := strings.TrimSpace(input.Platform)
	if !models.ValidPlatform(platform) {
		return ErrInvalidPlatform
	}
	method, err := models.ParseDistributionMethod(input.DistributionMethod)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(input.CreatorName)
	if name == "" {
		return fmt.Errorf("%w: creator_name is required", ErrInvalidInput)
	}
	if !input.CreatorRate.Valid() || !input.AgencyRate.Valid() {
		return fmt.Errorf("%w: rates must be between 0 and 1", ErrInvalidInput)
	}

	creator.FanCreatorID = input.FanCreatorID
	creator.PlatformID = strings.TrimSpace(input.PlatformID)
	creator.Platform = platform
	creator.CreatorName = name
	creator.URL = strings.TrimSpace(input.URL)
	creator.Email = strings.TrimSpace(input.Email)
	creator.Manager = strings.TrimSpace(input.Manager)
	creator.RegistrationType = strings.TrimSpace(input.RegistrationType)
	creator.CreatorRate = input.CreatorRate
	creator.AgencyRate = input.AgencyRate
	creator.DistributionMethod = method
	creator.AgencyID = nil
	if input.AgencyID != nil {
		if agencyID := strings.TrimSpace(*input.AgencyID); agencyID != "" {
			creator.AgencyID = &agencyID
		}
	}
	return nil
}

// ListAgencies 代理店一覧
func (s *CreatorService) ListAgencies() ([]models.Agency, error) {
	return s.agencyRepo.List()
}

// AgencyNames 振込申請に紐づく代理店名
func (s *CreatorService) AgencyNames(requests []models.TransferRequest) (map[int]string, error) {
	return s.agencyRepo.NamesByIDs(AgencyIDsOf(requests))
}

