package shared

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// NormalizePagination ページ指定を正規化する
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// PaginationQuery page / page_size を読む
func PaginationQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return NormalizePagination(page, pageSize)
}

// HasPaginationQuery page か page_size が指定されているか
func HasPaginationQuery(c *gin.Context) bool {
	_, hasPage := c.GetQuery("page")
	_, hasSize := c.GetQuery("page_size")
	return hasPage || hasSize
}

// QueryInt 整数クエリを読む。空なら 0
func QueryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
