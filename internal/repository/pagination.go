package repository

import "gorm.io/gorm"

// applyPagination LIMIT/OFFSET を付ける。pageSize が 0 以下なら全件
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
