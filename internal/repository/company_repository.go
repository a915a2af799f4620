package repository

import (
	"errors"

	"github.com/maekabu-office/internal/models"

	"gorm.io/gorm"
)

// CompanyRepository 自社情報データアクセス
type CompanyRepository interface {
	List() ([]models.Company, error)
	GetByID(id string) (*models.Company, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
	Delete(id string) error
}

// GormCompanyRepository GORM 実装
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository 自社情報リポジトリを生成する
func NewCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// List 会社名順の一覧
func (r *GormCompanyRepository) List() ([]models.Company, error) {
	companies := make([]models.Company, 0)
	if err := r.db.Order("company_name ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// GetByID ID で取得する
func (r *GormCompanyRepository) GetByID(id string) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// Create 作成
func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// Update 全項目を更新する
func (r *GormCompanyRepository) Update(company *models.Company) error {
	return r.db.Save(company).Error
}

// Delete 物理削除
func (r *GormCompanyRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Company{}).Error
}
