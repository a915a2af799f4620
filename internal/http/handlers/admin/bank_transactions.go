package admin

import (
	"errors"
	"strings"
	"time"

	handlershared "github.com/maekabu-office/internal/http/handlers/shared"
	"github.com/maekabu-office/internal/http/response"
	"github.com/maekabu-office/internal/service"

	"github.com/gin-gonic/gin"
)

// ImportBankTransactionsRequest 銀行明細の一括登録要求
type ImportBankTransactionsRequest struct {
	Transactions []service.BankTransactionImportRow `json:"transactions" binding:"required,min=1,dive"`
}

// ListBankTransactions 銀行明細一覧。page / page_size 指定時のみページ分けする
func (h *Handler) ListBankTransactions(c *gin.Context) {
	query := service.BankTransactionQuery{
		BankAccount:     strings.TrimSpace(c.Query("bank_account")),
		TransactionType: strings.TrimSpace(c.Query("transaction_type")),
		Amount:          strings.TrimSpace(c.Query("amount")),
	}
	paged := handlershared.HasPaginationQuery(c)
	if paged {
		query.Page, query.PageSize = handlershared.PaginationQuery(c)
	}
	transactions, total, err := h.BankTransactionService.List(query)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "error.bank_transaction_failed", err)
		return
	}
	if paged {
		response.SuccessWithPage(c, transactions, response.NewPagination(query.Page, query.PageSize, total))
		return
	}
	response.Success(c, transactions)
}

// GetPlatformDepositSummary プラットフォーム別の月次入金合計
func (h *Handler) GetPlatformDepositSummary(c *gin.Context) {
	now := time.Now()
	year, okYear := handlershared.QueryInt(c, "year")
	month, okMonth := handlershared.QueryInt(c, "month")
	if !okYear || !okMonth {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	summary, err := h.BankTransactionService.PlatformSummary(year, month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "error.bank_transaction_failed", err)
		return
	}
	response.Success(c, summary)
}

// ImportBankTransactions 銀行明細をまとめて登録する。サービスキー専用
func (h *Handler) ImportBankTransactions(c *gin.Context) {
	var req ImportBankTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	count, err := h.BankTransactionService.Import(req.Transactions)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "error.bank_transaction_failed", err)
		return
	}
	requestLog(c).Infow("bank_transactions_import_request", "count", count)
	response.Success(c, gin.H{"imported": count})
}
