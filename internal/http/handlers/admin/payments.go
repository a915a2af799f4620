package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/maekabu-office/internal/constants"
	handlershared "github.com/maekabu-office/internal/http/handlers/shared"
	"github.com/maekabu-office/internal/http/response"
	"github.com/maekabu-office/internal/i18n"
	"github.com/maekabu-office/internal/repository"
	"github.com/maekabu-office/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MatchRequest 照合確定の要求
type MatchRequest struct {
	Type          string `json:"type" binding:"required"`
	DepositID     string `json:"depositId" binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
}

// TransferStatusRequest 振込申請のステータス変更要求
type TransferStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListPayments type 別の支払データ一覧
func (h *Handler) ListPayments(c *gin.Context) {
	filter, ok := transferFilterFromQuery(c)
	if !ok {
		return
	}
	result, err := h.PaymentService.List(c.Query("type"), filter)
	if err != nil {
		respondPaymentError(c, err, "error.payment_fetch_failed")
		return
	}
	response.Success(c, result)
}

// CreatePayment 振込申請を作成する。他の type は受け付けない
func (h *Handler) CreatePayment(c *gin.Context) {
	employeeID, ok := getEmployeeID(c)
	if !ok {
		return
	}
	kind, err := service.NormalizePaymentKind(c.Query("type"))
	if err != nil {
		respondPaymentError(c, err, "error.payment_save_failed")
		return
	}
	if kind != constants.PaymentKindTransferRequest {
		respondError(c, response.CodeBadRequest, "error.type_invalid", nil)
		return
	}
	var req service.TransferRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	request, err := h.PaymentService.CreateTransferRequest(req, employeeID)
	if err != nil {
		respondPaymentError(c, err, "error.payment_save_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.transfer_request_create"), request)
}

// DeletePayment 振込申請を削除する
func (h *Handler) DeletePayment(c *gin.Context) {
	if err := h.PaymentService.Delete(c.Query("type"), c.Param("id")); err != nil {
		respondPaymentError(c, err, "error.payment_save_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.transfer_request_delete"), gin.H{"success": true})
}

// MatchPayment 記録と銀行明細の照合を確定する
func (h *Handler) MatchPayment(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.PaymentService.Match(c.Request.Context(), req.Type, req.DepositID, req.TransactionID); err != nil {
		respondPaymentError(c, err, "error.payment_save_failed")
		return
	}
	response.Success(c, gin.H{"success": true})
}

// GetPaymentCandidates 金額が一致する照合候補
func (h *Handler) GetPaymentCandidates(c *gin.Context) {
	result, err := h.PaymentService.Candidates(c.Query("type"), c.Param("id"))
	if err != nil {
		respondPaymentError(c, err, "error.payment_fetch_failed")
		return
	}
	response.Success(c, result)
}

// UpdatePaymentStatus 振込申請を承認または却下する
func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	employeeID, ok := getEmployeeID(c)
	if !ok {
		return
	}
	kind, err := service.NormalizePaymentKind(c.Query("type"))
	if err != nil {
		respondPaymentError(c, err, "error.payment_save_failed")
		return
	}
	if kind != constants.PaymentKindTransferRequest {
		respondError(c, response.CodeBadRequest, "error.type_invalid", nil)
		return
	}
	var req TransferStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	request, err := h.PaymentService.UpdateTransferStatus(c.Param("id"), req.Status, employeeID)
	if err != nil {
		respondPaymentError(c, err, "error.payment_save_failed")
		return
	}
	response.Success(c, request)
}

// ExportPayments 振込申請の集計を xlsx で返す
func (h *Handler) ExportPayments(c *gin.Context) {
	kind, err := service.NormalizePaymentKind(c.DefaultQuery("type", constants.PaymentKindTransferRequest))
	if err != nil {
		respondPaymentError(c, err, "error.export_failed")
		return
	}
	if kind != constants.PaymentKindTransferRequest {
		respondError(c, response.CodeBadRequest, "error.type_invalid", nil)
		return
	}
	filter, ok := transferFilterFromQuery(c)
	if !ok {
		return
	}
	buf, err := h.PaymentService.ExportSettlement(filter)
	if err != nil {
		respondPaymentError(c, err, "error.export_failed")
		return
	}
	filename := fmt.Sprintf("transfer_requests_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func transferFilterFromQuery(c *gin.Context) (repository.TransferRequestListFilter, bool) {
	workYear, okYear := handlershared.QueryInt(c, "work_year")
	workMonth, okMonth := handlershared.QueryInt(c, "work_month")
	if !okYear || !okMonth {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return repository.TransferRequestListFilter{}, false
	}
	return repository.TransferRequestListFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		WorkYear:  workYear,
		WorkMonth: workMonth,
		Platform:  strings.TrimSpace(c.Query("platform")),
		Status:    strings.TrimSpace(c.Query("status")),
	}, true
}

func respondPaymentError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrPaymentTypeRequired):
		respondError(c, response.CodeBadRequest, "error.type_required", nil)
	case errors.Is(err, service.ErrInvalidPaymentType):
		respondError(c, response.CodeBadRequest, "error.type_invalid", nil)
	case errors.Is(err, service.ErrIDRequired):
		respondError(c, response.CodeBadRequest, "error.id_required", nil)
	case errors.Is(err, service.ErrTransferRequestInvalid):
		msg := i18n.T(i18n.ResolveLocale(c), "error.transfer_request_invalid")
		respondErrorWithMsg(c, response.CodeBadRequest, msg+" ("+strings.TrimPrefix(err.Error(), service.ErrTransferRequestInvalid.Error()+": ")+")", nil)
	case errors.Is(err, service.ErrCreatorNotFound):
		respondError(c, response.CodeNotFound, "error.creator_not_found", nil)
	case errors.Is(err, service.ErrPaymentNotFound):
		respondError(c, response.CodeNotFound, "error.payment_not_found", nil)
	case errors.Is(err, service.ErrBankTransactionAbsent):
		respondError(c, response.CodeNotFound, "error.bank_transaction_missing", nil)
	case errors.Is(err, service.ErrTransferRequestExists):
		respondError(c, response.CodeConflict, "error.transfer_request_exists", nil)
	case errors.Is(err, service.ErrTransferStatusInvalid):
		respondError(c, response.CodeConflict, "error.transfer_status_invalid", nil)
	case errors.Is(err, service.ErrAlreadyReconciled):
		respondError(c, response.CodeConflict, "error.already_reconciled", nil)
	case errors.Is(err, service.ErrBankTransactionLinked):
		respondError(c, response.CodeConflict, "error.bank_transaction_linked", nil)
	case errors.Is(err, service.ErrUnknownDistributionMethod):
		respondError(c, response.CodeInternal, "error.settlement_inconsistent", err)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}
