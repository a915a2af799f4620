package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Employee 社員（ログイン主体）
type Employee struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`                        // 主キー
	EmployeeNumber string     `gorm:"uniqueIndex;size:32;not null" json:"employee_number"` // 社員コード
	DisplayName    string     `gorm:"size:100" json:"display_name"`                        // 表示名
	LastName       string     `gorm:"size:50" json:"last_name"`                            // 姓
	FirstName      string     `gorm:"size:50" json:"first_name"`                           // 名
	Department     string     `gorm:"size:100" json:"department"`                          // 所属
	Role           string     `gorm:"size:32;not null;default:'staff'" json:"role"`        // 権限ロール
	PasswordHash   string     `gorm:"not null" json:"-"`                                   // パスワードハッシュ（返却しない）
	TokenVersion   uint64     `gorm:"not null;default:0" json:"-"`                         // トークン版数（パスワード変更で加算）
	LastLoginAt    *time.Time `json:"last_login_at"`                                       // 最終ログイン
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName テーブル名
func (Employee) TableName() string {
	return "employees"
}

// BeforeCreate ID 採番
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

// Name 画面表示用の氏名。表示名、姓名、社員コードの順で採用する
func (e *Employee) Name() string {
	if name := strings.TrimSpace(e.DisplayName); name != "" {
		return name
	}
	if full := strings.TrimSpace(e.LastName + " " + e.FirstName); full != "" {
		return full
	}
	return e.EmployeeNumber
}

// DepartmentOr 所属が空なら既定値を返す
func (e *Employee) DepartmentOr(fallback string) string {
	if dept := strings.TrimSpace(e.Department); dept != "" {
		return dept
	}
	return fallback
}
