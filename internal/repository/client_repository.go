package repository

import (
	"errors"
	"strings"

	"github.com/maekabu-office/internal/models"

	"gorm.io/gorm"
)

// ClientRepository 取引先データアクセス
type ClientRepository interface {
	List(filter ClientListFilter) ([]models.Client, error)
	GetByID(id string) (*models.Client, error)
	Create(client *models.Client) error
	Update(client *models.Client) error
	Delete(id string) error
}

// GormClientRepository GORM 実装
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository 取引先リポジトリを生成する
func NewClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// List 取引先名順の一覧
func (r *GormClientRepository) List(filter ClientListFilter) ([]models.Client, error) {
	query := r.db.Model(&models.Client{})
	if companyID := strings.TrimSpace(filter.CompanyID); companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}
	if filter.OnlyVendor {
		query = query.Where("is_vendor = ?", true)
	}
	query = applySearch(query, filter.Search, "client_name", "client_name_kana")

	clients := make([]models.Client, 0)
	if err := query.Order("client_name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// GetByID ID で取得する
func (r *GormClientRepository) GetByID(id string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("id = ?", id).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// Create 作成
func (r *GormClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// Update 全項目を更新する
func (r *GormClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// Delete 物理削除
func (r *GormClientRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Client{}).Error
}
