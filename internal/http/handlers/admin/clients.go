package admin

import (
	"errors"
	"strings"

	"github.com/maekabu-office/internal/http/response"
	"github.com/maekabu-office/internal/repository"
	"github.com/maekabu-office/internal/service"

	"github.com/gin-gonic/gin"
)

// ListClients 取引先一覧
func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.ClientService.List(repository.ClientListFilter{
		CompanyID:  strings.TrimSpace(c.Query("company_id")),
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyVendor: c.Query("is_vendor") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.client_fetch_failed", err)
		return
	}
	response.Success(c, clients)
}

// GetClient 取引先詳細
func (h *Handler) GetClient(c *gin.Context) {
	client, err := h.ClientService.Get(c.Param("id"))
	if err != nil {
		h.respondClientError(c, err, "error.client_fetch_failed")
		return
	}
	response.Success(c, client)
}

// CreateClient 取引先を登録する
func (h *Handler) CreateClient(c *gin.Context) {
	employeeID, ok := getEmployeeID(c)
	if !ok {
		return
	}
	var req service.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	client, err := h.ClientService.Create(req, employeeID)
	if err != nil {
		h.respondClientError(c, err, "error.client_save_failed")
		return
	}
	response.Success(c, client)
}

// UpdateClient 取引先を更新する
func (h *Handler) UpdateClient(c *gin.Context) {
	var req service.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	client, err := h.ClientService.Update(c.Param("id"), req)
	if err != nil {
		h.respondClientError(c, err, "error.client_save_failed")
		return
	}
	response.Success(c, client)
}

// DeleteClient 取引先を削除する
func (h *Handler) DeleteClient(c *gin.Context) {
	if err := h.ClientService.Delete(c.Param("id")); err != nil {
		h.respondClientError(c, err, "error.client_save_failed")
		return
	}
	response.Success(c, gin.H{"success": true})
}

func (h *Handler) respondClientError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		respondError(c, response.CodeNotFound, "error.client_not_found", nil)
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrIDRequired):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

// ListCompanies 会社一覧
func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.CompanyService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.company_fetch_failed", err)
		return
	}
	response.Success(c, companies)
}

// GetCompany 会社詳細
func (h *Handler) GetCompany(c *gin.Context) {
	company, err := h.CompanyService.Get(c.Param("id"))
	if err != nil {
		h.respondCompanyError(c, err, "error.company_fetch_failed")
		return
	}
	response.Success(c, company)
}

// CreateCompany 会社を登録する
func (h *Handler) CreateCompany(c *gin.Context) {
	var req service.CompanyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	company, err := h.CompanyService.Create(req)
	if err != nil {
		h.respondCompanyError(c, err, "error.company_save_failed")
		return
	}
	response.Success(c, company)
}

// UpdateCompany 会社を更新する
func (h *Handler) UpdateCompany(c *gin.Context) {
	var req service.CompanyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	company, err := h.CompanyService.Update(c.Param("id"), req)
	if err != nil {
		h.respondCompanyError(c, err, "error.company_save_failed")
		return
	}
	response.Success(c, company)
}

// DeleteCompany 会社を削除する
func (h *Handler) DeleteCompany(c *gin.Context) {
	if err := h.CompanyService.Delete(c.Param("id")); err != nil {
		h.respondCompanyError(c, err, "error.company_save_failed")
		return
	}
	response.Success(c, gin.H{"success": true})
}

func (h *Handler) respondCompanyError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		respondError(c, response.CodeNotFound, "error.company_not_found", nil)
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrIDRequired):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}
