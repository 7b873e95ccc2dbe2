package show

import (
	"context"

	"flashcard-show/biz/adaptor"
	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// CreateSet .
// @router /api/sets [POST]
func CreateSet(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.CreateSetReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.FlashcardService.CreateSet(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcessCreated(ctx, c, &req, resp, err)
}

// ListSets .
// @router /api/sets [GET]
func ListSets(ctx context.Context, c *app.RequestContext) {
	req := show.ListSetsReq{PaginationOptions: bindPage(c)}

	p := provider.Get()
	resp, err := p.FlashcardService.ListSets(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetSet .
// @router /api/sets/:id [GET]
func GetSet(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.GetSetReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.FlashcardService.GetSet(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateSet .
// @router /api/sets/:id [PUT]
func UpdateSet(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.UpdateSetReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.FlashcardService.UpdateSet(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
