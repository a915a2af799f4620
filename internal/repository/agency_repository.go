package repository

import (
	"github.com/maekabu-office/internal/models"

	"gorm.io/gorm"
)

// AgencyRepository 代理店データアクセス
type AgencyRepository interface {
	List() ([]models.Agency, error)
	NamesByIDs(ids []int) (map[int]string, error)
}

// GormAgencyRepository GORM 実装
type GormAgencyRepository struct {
	db *gorm.DB
}

// NewAgencyRepository 代理店リポジトリを生成する
func NewAgencyRepository(db *gorm.DB) *GormAgencyRepository {
	return &GormAgencyRepository{db: db}
}

// List 代理店 ID 順の一覧
func (r *GormAgencyRepository) List() ([]models.Agency, error) {
	agencies := make([]models.Agency, 0)
	if err := r.db.Order("agency_id ASC").Find(&agencies).Error; err != nil {
		return nil, err
	}
	return agencies, nil
}

// NamesByIDs 代理店 ID から名称へのマップ
func (r *GormAgencyRepository) NamesByIDs(ids []int) (map[int]string, error) {
	names := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var agencies []models.Agency
	if err := r.db.Select("agency_id", "agency_name").Where("agency_id IN ?", ids).Find(&agencies).Error; err != nil {
		return nil, err
	}
	for _, agency := range agencies {
		names[agency.AgencyID] = agency.AgencyName
	}
	return names, nil
}
