package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/http/response"
	"github.com/maekabu-office/internal/repository"
	"github.com/maekabu-office/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCreators クリエイター一覧。source=fan_pf_creator で選択肢用の一覧を返す
func (h *Handler) ListCreators(c *gin.Context) {
	source := strings.TrimSpace(c.DefaultQuery("source", constants.CreatorSourceFan))
	switch source {
	case constants.CreatorSourceFan:
		creators, err := h.CreatorService.ListFanCreators()
		if err != nil {
			respondError(c, response.CodeInternal, "error.creator_fetch_failed", err)
			return
		}
		response.Success(c, creators)
	case constants.CreatorSourcePf:
		options, err := h.CreatorService.ListPfCreatorOptions(strings.TrimSpace(c.Query("platform")))
		if err != nil {
			respondError(c, response.CodeInternal, "error.creator_fetch_failed", err)
			return
		}
		response.Success(c, options)
	default:
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	}
}

// CreateCreator クリエイターを登録する
func (h *Handler) CreateCreator(c *gin.Context) {
	var req service.FanCreatorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	creator, err := h.CreatorService.CreateFanCreator(req)
	if err != nil {
		respondCreatorError(c, err)
		return
	}
	response.Success(c, creator)
}

// UpdateCreator クリエイターを更新する。ID は本文で受け取る
func (h *Handler) UpdateCreator(c *gin.Context) {
	var req service.FanCreatorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	creator, err := h.CreatorService.UpdateFanCreator(req)
	if err != nil {
		respondCreatorError(c, err)
		return
	}
	response.Success(c, creator)
}

// DeleteCreator クリエイターを削除する
func (h *Handler) DeleteCreator(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("id"))
	if raw == "" {
		respondError(c, response.CodeBadRequest, "error.id_required", nil)
		return
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.CreatorService.DeleteFanCreator(uint(id)); err != nil {
		respondCreatorError(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}

// ListPfCreators プラットフォーム登録一覧
func (h *Handler) ListPfCreators(c *gin.Context) {
	creators, err := h.CreatorService.ListPfCreators(repository.PfCreatorListFilter{
		Platform: strings.TrimSpace(c.Query("platform")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.creator_fetch_failed", err)
		return
	}
	response.Success(c, creators)
}

// CreatePfCreator プラットフォーム登録を作成する
func (h *Handler) CreatePfCreator(c *gin.Context) {
	var req service.PfCreatorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	creator, err := h.CreatorService.CreatePfCreator(req)
	if err != nil {
		respondCreatorError(c, err)
		return
	}
	response.Success(c, creator)
}

// UpdatePfCreator プラットフォーム登録を更新する。ID は本文で受け取る
func (h *Handler) UpdatePfCreator(c *gin.Context) {
	var req service.PfCreatorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	creator, err := h.CreatorService.UpdatePfCreator(req)
	if err != nil {
		respondCreatorError(c, err)
		return
	}
	response.Success(c, creator)
}

// DeletePfCreator プラットフォーム登録を削除する
func (h *Handler) DeletePfCreator(c *gin.Context) {
	if err := h.CreatorService.DeletePfCreator(c.Query("id")); err != nil {
		respondCreatorError(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}

// ListAgencies 代理店一覧
func (h *Handler) ListAgencies(c *gin.Context) {
	agencies, err := h.CreatorService.ListAgencies()
	if err != nil {
		respondError(c, response.CodeInternal, "error.agency_fetch_failed", err)
		return
	}
	response.Success(c, agencies)
}

func respondCreatorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		respondError(c, response.CodeBadRequest, "error.id_required", nil)
	case errors.Is(err, service.ErrUnknownDistributionMethod):
		respondError(c, response.CodeBadRequest, "error.distribution_invalid", nil)
	case errors.Is(err, service.ErrInvalidPlatform):
		respondError(c, response.CodeBadRequest, "error.platform_invalid", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	case errors.Is(err, service.ErrCreatorNotFound):
		respondError(c, response.CodeNotFound, "error.creator_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.creator_save_failed", err)
	}
}
