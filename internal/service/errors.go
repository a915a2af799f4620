package service

import (
	"errors"

	"github.com/maekabu-office/internal/models"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrIDRequired             = errors.New("id is required")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidPassword        = errors.New("invalid password")
	ErrWeakPassword           = errors.New("weak password")
	ErrInvalidToken           = errors.New("invalid token")
	ErrTokenRevoked           = errors.New("token revoked")
	ErrSessionSecretMissing   = errors.New("session secret missing")
	ErrCaptchaRequired        = errors.New("captcha required")
	ErrCaptchaInvalid         = errors.New("captcha invalid")
	ErrCaptchaDisabled        = errors.New("captcha disabled")
	ErrInvalidPlatform        = errors.New("invalid platform")
	ErrInvalidPaymentType     = errors.New("invalid payment type")
	ErrPaymentTypeRequired    = errors.New("payment type required")
	ErrClientNotFound         = errors.New("client not found")
	ErrCompanyNotFound        = errors.New("company not found")
	ErrCreatorNotFound        = errors.New("creator not found")
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrInvoiceInvalid         = errors.New("invoice invalid")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrBankTransactionAbsent  = errors.New("bank transaction not found")
	ErrAlreadyReconciled      = errors.New("record already reconciled")
	ErrBankTransactionLinked  = errors.New("bank transaction already linked")
	ErrTransferRequestInvalid = errors.New("transfer request invalid")
	ErrTransferRequestExists  = errors.New("transfer request already exists")
	ErrTransferStatusInvalid  = errors.New("transfer status transition invalid")
	ErrUploadNoFile           = errors.New("no upload file")
	ErrUploadInvalid          = errors.New("upload file invalid")
	ErrStorageUnavailable     = errors.New("object storage unavailable")

	// ErrUnknownDistributionMethod 分配方式が列挙外
	ErrUnknownDistributionMethod = models.ErrUnknownDistributionMethod
)
