package models

import (
	"strings"

	"github.com/maekabu-office/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultEmployeeNumber   = "admin"
	defaultEmployeePassword = "admin12345"
	defaultEmployeeRole     = "admin"
)

// InitDefaultEmployee 社員が 1 人もいなければ初期管理者を作成する
func InitDefaultEmployee(db *gorm.DB, number, password, department string) error {
	var count int64
	if err := db.Model(&Employee{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	number = strings.TrimSpace(number)
	if number == "" {
		number = defaultEmployeeNumber
	}
	if password == "" {
		password = defaultEmployeePassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	employee := Employee{
		EmployeeNumber: number,
		DisplayName:    "管理者",
		Department:     department,
		Role:           defaultEmployeeRole,
		PasswordHash:   string(hash),
	}
	if err := db.Create(&employee).Error; err != nil {
		return err
	}

	if password == defaultEmployeePassword {
		logger.Warnw("default_employee_created_with_default_password", "employee_number", number)
		logger.Warnw("default_employee_password_change_required", "employee_number", number)
	} else {
		logger.Warnw("default_employee_created", "employee_number", number, "password_hidden", true)
	}
	return nil
}
