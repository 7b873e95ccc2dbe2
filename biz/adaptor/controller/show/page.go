package show

import (
	"flashcard-show/biz/application/dto/basic"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// bindPage GET请求的分页参数放在query里
func bindPage(c *app.RequestContext) *basic.PaginationOptions {
	opts := &basic.PaginationOptions{}
	if v, ok := c.GetQuery("page"); ok {
		opts.Page = lo.ToPtr(cast.ToInt64(v))
	}
	if v, ok := c.GetQuery("limit"); ok {
		opts.Limit = lo.ToPtr(cast.ToInt64(v))
	}
	return opts
}
