package show

import (
	"context"

	"flashcard-show/biz/adaptor"
	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// ListNotifications .
// @router /api/notifications [GET]
func ListNotifications(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.ListNotificationsReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}
	req.PaginationOptions = bindPage(c)

	p := provider.Get()
	resp, err := p.NotificationService.ListNotifications(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// MarkRead .
// @router /api/notifications/:id/read [POST]
func MarkRead(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.MarkReadReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.NotificationService.MarkRead(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListCatalog .
// @router /api/catalog/sets [GET]
func ListCatalog(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.ListCatalogReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.CatalogService.ListCatalog(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Suggest .
// @router /api/suggestions [GET]
func Suggest(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.SuggestReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.SuggestionService.Suggest(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
