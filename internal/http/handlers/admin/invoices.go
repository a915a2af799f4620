package admin

import (
	"errors"
	"net/http"
	"strings"

	handlershared "github.com/maekabu-office/internal/http/handlers/shared"
	"github.com/maekabu-office/internal/http/response"
	"github.com/maekabu-office/internal/repository"
	"github.com/maekabu-office/internal/service"

	"github.com/gin-gonic/gin"
)

// ListInvoices 請求書一覧
func (h *Handler) ListInvoices(c *gin.Context) {
	page, pageSize := handlershared.PaginationQuery(c)
	invoices, total, err := h.InvoiceService.List(repository.InvoiceListFilter{
		Page:          page,
		PageSize:      pageSize,
		CompanyID:     strings.TrimSpace(c.Query("company_id")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.invoice_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, invoices, response.NewPagination(page, pageSize, total))
}

// GetInvoice 請求書詳細（明細付き）
func (h *Handler) GetInvoice(c *gin.Context) {
	invoice, err := h.InvoiceService.Get(c.Param("id"))
	if err != nil {
		respondInvoiceError(c, err, "error.invoice_fetch_failed")
		return
	}
	response.Success(c, invoice)
}

// CreateInvoice 請求書を明細ごと作成する
func (h *Handler) CreateInvoice(c *gin.Context) {
	employeeID, ok := getEmployeeID(c)
	if !ok {
		return
	}
	var req service.InvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	invoice, err := h.InvoiceService.Create(req, employeeID)
	if err != nil {
		respondInvoiceError(c, err, "error.invoice_save_failed")
		return
	}
	response.Success(c, invoice)
}

// UpdateInvoice 請求書を更新する。items があれば明細を置き換える
func (h *Handler) UpdateInvoice(c *gin.Context) {
	var req service.InvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	invoice, err := h.InvoiceService.Update(c.Param("id"), req)
	if err != nil {
		respondInvoiceError(c, err, "error.invoice_save_failed")
		return
	}
	response.Success(c, invoice)
}

// DeleteInvoice 請求書を明細ごと削除する
func (h *Handler) DeleteInvoice(c *gin.Context) {
	if err := h.InvoiceService.Delete(c.Param("id")); err != nil {
		respondInvoiceError(c, err, "error.invoice_save_failed")
		return
	}
	response.Success(c, gin.H{"success": true})
}

// GetInvoicePDF 印刷用の請求書 HTML を返す
func (h *Handler) GetInvoicePDF(c *gin.Context) {
	_, html, err := h.InvoiceDocumentService.Render(c.Param("id"))
	if err != nil {
		respondInvoiceError(c, err, "error.invoice_render_failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func respondInvoiceError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrInvoiceNotFound):
		respondError(c, response.CodeNotFound, "error.invoice_not_found", nil)
	case errors.Is(err, service.ErrInvoiceInvalid), errors.Is(err, service.ErrInvalidInput):
		respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

// ListVendorInvoices 支払請求書一覧
func (h *Handler) ListVendorInvoices(c *gin.Context) {
	invoices, err := h.VendorInvoiceService.List(repository.VendorInvoiceListFilter{
		CompanyID:     strings.TrimSpace(c.Query("company_id")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.vendor_invoice_failed", err)
		return
	}
	response.Success(c, invoices)
}

// CreateVendorInvoice 支払請求書を登録する
func (h *Handler) CreateVendorInvoice(c *gin.Context) {
	employeeID, ok := getEmployeeID(c)
	if !ok {
		return
	}
	var req service.VendorInvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	invoice, err := h.VendorInvoiceService.Create(req, employeeID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "error.vendor_invoice_failed", err)
		return
	}
	response.Success(c, invoice)
}

// Upload ファイルをバケットへ保存する
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_no_file", nil)
		return
	}
	result, err := h.UploadService.SaveFile(c.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadNoFile):
			respondError(c, response.CodeBadRequest, "error.upload_no_file", nil)
		case errors.Is(err, service.ErrUploadInvalid):
			respondError(c, response.CodeBadRequest, "error.upload_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.upload_failed", err)
		}
		return
	}
	response.Success(c, result)
}
