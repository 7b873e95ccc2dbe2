package page

import (
	"flashcard-show/biz/application/dto/basic"
	"flashcard-show/biz/infrastructure/consts"
)

// ParsePageOpt 返回页码和每页条数, 缺省为第一页
func ParsePageOpt(p *basic.PaginationOptions) (page int64, limit int64) {
	page = 1
	limit = consts.PageSize

	if p != nil && p.Page != nil && *p.Page > 0 {
		page = *p.Page
	}
	if p != nil && p.Limit != nil && *p.Limit > 0 {
		limit = min(*p.Limit, 100)
	}
	return page, limit
}
