package repository

import (
	"errors"
	"time"

	"github.com/maekabu-office/internal/models"

	"gorm.io/gorm"
)

// EmployeeRepository 社員データアクセス
type EmployeeRepository interface {
	GetByNumber(employeeNumber string) (*models.Employee, error)
	GetByID(id string) (*models.Employee, error)
	List() ([]models.Employee, error)
	Create(employee *models.Employee) error
	UpdatePassword(id, passwordHash string) error
	TouchLogin(id string, at time.Time) error
}

// GormEmployeeRepository GORM 実装
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository 社員リポジトリを生成する
func NewEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// GetByNumber 社員コードで取得する
func (r *GormEmployeeRepository) GetByNumber(employeeNumber string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("employee_number = ?", employeeNumber).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

// GetByID ID で取得する
func (r *GormEmployeeRepository) GetByID(id string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("id = ?", id).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

// List 社員一覧
func (r *GormEmployeeRepository) List() ([]models.Employee, error) {
	employees := make([]models.Employee, 0)
	if err := r.db.Order("employee_number ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Create 社員を作成する
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// UpdatePassword パスワードを更新し、発行済みトークンを無効化する
func (r *GormEmployeeRepository) UpdatePassword(id, passwordHash string) error {
	return r.db.Model(&models.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"token_version": gorm.Expr("token_version + 1"),
		}).Error
}

// TouchLogin 最終ログイン時刻を記録する
func (r *GormEmployeeRepository) TouchLogin(id string, at time.Time) error {
	return r.db.Model(&models.Employee{}).Where("id = ?", id).Update("last_login_at", at).Error
}
