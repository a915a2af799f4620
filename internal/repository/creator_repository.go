package repository

import (
	"errors"
	"strings"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/models"

	"gorm.io/gorm"
)

// CreatorRepository クリエイター本人（fan_creator）データアクセス
type CreatorRepository interface {
	List() ([]models.FanCreator, error)
	GetByID(id uint) (*models.FanCreator, error)
	Create(creator *models.FanCreator) error
	Update(creator *models.FanCreator) error
	Delete(id uint) error
}

// GormCreatorRepository GORM 実装
type GormCreatorRepository struct {
	db *gorm.DB
}

// NewCreatorRepository クリエイターリポジトリを生成する
func NewCreatorRepository(db *gorm.DB) *GormCreatorRepository {
	return &GormCreatorRepository{db: db}
}

// List 本名順の一覧
func (r *GormCreatorRepository) List() ([]models.FanCreator, error) {
	creators := make([]models.FanCreator, 0)
	if err := r.db.Order("real_name ASC").Find(&creators).Error; err != nil {
		return nil, err
	}
	return creators, nil
}

// GetByID ID で取得する
func (r *GormCreatorRepository) GetByID(id uint) (*models.FanCreator, error) {
	var creator models.FanCreator
	if err := r.db.First(&creator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creator, nil
}

// Create 作成
func (r *GormCreatorRepository) Create(creator *models.FanCreator) error {
	return r.db.Create(creator).Error
}

// Update 全項目を更新する
func (r *GormCreatorRepository) Update(creator *models.FanCreator) error {
	return r.db.Save(creator).Error
}

// Delete 物理削除
func (r *GormCreatorRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.FanCreator{}, id).Error
}

// PfCreatorOption クリエイター選択肢（id / 名前 / プラットフォームのみ）
type PfCreatorOption struct {
	ID          string `json:"id"`
	CreatorName string `json:"creator_name"`
	Platform    string `json:"platform"`
}

// PfCreatorRepository プラットフォーム登録（fan_pf_creator）データアクセス
type PfCreatorRepository interface {
	List(filter PfCreatorListFilter) ([]models.PfCreator, error)
	ListOptions(platform string) ([]PfCreatorOption, error)
	GetByID(id string) (*models.PfCreator, error)
	Create(creator *models.PfCreator) error
	Update(creator *models.PfCreator) error
	Delete(id string) error
}

// GormPfCreatorRepository GORM 実装
type GormPfCreatorRepository struct {
	db *gorm.DB
}

// NewPfCreatorRepository プラットフォーム登録リポジトリを生成する
func NewPfCreatorRepository(db *gorm.DB) *GormPfCreatorRepository {
	return &GormPfCreatorRepository{db: db}
}

func applyPlatformFilter(query *gorm.DB, platform string) *gorm.DB {
	platform = strings.TrimSpace(platform)
	if platform == "" || platform == constants.PlatformFilterAll {
		return query
	}
	return query.Where("platform = ?", platform)
}

// List 登録の新しい順
func (r *GormPfCreatorRepository) List(filter PfCreatorListFilter) ([]models.PfCreator, error) {
	query := applyPlatformFilter(r.db.Model(&models.PfCreator{}), filter.Platform)
	query = applySearch(query, filter.Search, "creator_name", "platform_id")

	creators := make([]models.PfCreator, 0)
	if err := query.Order("created_at DESC").Find(&creators).Error; err != nil {
		return nil, err
	}
	return creators, nil
}

// ListOptions 選択肢用にクリエイター名順で返す
func (r *GormPfCreatorRepository) ListOptions(platform string) ([]PfCreatorOption, error) {
	query := applyPlatformFilter(r.db.Model(&models.PfCreator{}), platform)
	options := make([]PfCreatorOption, 0)
	if err := query.Select("id", "creator_name", "platform").Order("creator_name ASC").Scan(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// GetByID ID で取得する
func (r *GormPfCreatorRepository) GetByID(id string) (*models.PfCreator, error) {
	var creator models.PfCreator
	if err := r.db.Where("id = ?", id).First(&creator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creator, nil
}

// Create 作成
func (r *GormPfCreatorRepository) Create(creator *models.PfCreator) error {
	return r.db.Create(creator).Error
}

// Update 全項目を更新する
func (r *GormPfCreatorRepository) Update(creator *models.PfCreator) error {
	return r.db.Save(creator).Error
}

// Delete 物理削除
func (r *GormPfCreatorRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.PfCreator{}).Error
}
