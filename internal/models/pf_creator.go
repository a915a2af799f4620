package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DistributionMethod 代理店報酬の算定方法
type DistributionMethod string

const (
	// DistributionCrBased クリエイター報酬 × AG 料率
	DistributionCrBased DistributionMethod = "CR給"
	// DistributionDepositBased 入金額 × AG 料率
	DistributionDepositBased DistributionMethod = "入金額"
	// DistributionDepositMinusCr （入金額 − クリエイター報酬）× AG 料率
	DistributionDepositMinusCr DistributionMethod = "入金額-CR給"
	// DistributionUnset 代理店なし
	DistributionUnset DistributionMethod = ""
)

// ErrUnknownDistributionMethod 未定義の分配方法
var ErrUnknownDistributionMethod = errors.New("unknown distribution method")

// ParseDistributionMethod 文字列を分配方法に変換する
func ParseDistributionMethod(raw string) (DistributionMethod, error) {
	method := DistributionMethod(strings.TrimSpace(raw))
	if !method.Valid() {
		return DistributionUnset, ErrUnknownDistributionMethod
	}
	return method, nil
}

// Valid 定義済みの値か
func (m DistributionMethod) Valid() bool {
	switch m {
	case DistributionCrBased, DistributionDepositBased, DistributionDepositMinusCr, DistributionUnset:
		return true
	default:
		return false
	}
}

// Platform 配信プラットフォーム
const (
	PlatformFantia = "Fantia"
	PlatformMyfans = "Myfans"
)

// ValidPlatform 対応プラットフォームか
func ValidPlatform(platform string) bool {
	switch platform {
	case PlatformFantia, PlatformMyfans:
		return true
	default:
		return false
	}
}

// PfCreator クリエイターのプラットフォーム登録（料率と分配方法を持つ）
type PfCreator struct {
	ID                 string             `gorm:"primaryKey;size:36" json:"id"`
	FanCreatorID       *uint              `gorm:"index" json:"fan_creator_id"`
	PlatformID         string             `gorm:"size:100" json:"platform_id"`
	Platform           string             `gorm:"size:32;not null;index" json:"platform"`
	CreatorName        string             `gorm:"size:100;not null;index" json:"creator_name"`
	URL                string             `gorm:"size:500" json:"url"`
	Email              string             `gorm:"size:255" json:"email"`
	Manager            string             `gorm:"size:100" json:"manager"`
	RegistrationType   string             `gorm:"size:16" json:"registration_type"` // 独占 / 非独占
	CreatorRate        Rate               `gorm:"type:decimal(6,4);not null;default:0" json:"creator_rate"`
	AgencyID           *string            `gorm:"size:16;index" json:"agency_id"` // 代理店 ID（数値文字列）
	AgencyRate         Rate               `gorm:"type:decimal(6,4);not null;default:0" json:"agency_rate"`
	DistributionMethod DistributionMethod `gorm:"size:16;not null;default:''" json:"distribution_method"`
	CreatedAt          time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// TableName テーブル名
func (PfCreator) TableName() string {
	return "fan_pf_creator"
}

// BeforeCreate ID 採番
func (p *PfCreator) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// Agency 代理店
type Agency struct {
	AgencyID   int       `gorm:"column:agency_id;primaryKey;autoIncrement:false" json:"agency_id"`
	AgencyName string    `gorm:"size:200;not null" json:"agency_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName テーブル名
func (Agency) TableName() string {
	return "agencies"
}
