package repository

import "gorm.io/gorm"

// 单次查询的行数上限，导出批量拉取也走这里。
const repoMaxPageSize = 500

// applyPagination 统一应用分页，页码从 1 开始。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > repoMaxPageSize {
		pageSize = repoMaxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
