package show

import (
	"context"

	"flashcard-show/biz/adaptor"
	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// CreateClass .
// @router /api/classes [POST]
func CreateClass(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.CreateClassReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.CreateClass(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcessCreated(ctx, c, &req, resp, err)
}

// ListClasses .
// @router /api/classes [GET]
func ListClasses(ctx context.Context, c *app.RequestContext) {
	req := show.ListClassesReq{PaginationOptions: bindPage(c)}

	p := provider.Get()
	resp, err := p.ClassService.ListClasses(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// JoinClass .
// @router /api/classes/join [POST]
func JoinClass(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.JoinClassReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.JoinClass(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetClassMembers .
// @router /api/classes/:id/members [GET]
func GetClassMembers(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.GetClassMembersReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}
	req.PaginationOptions = bindPage(c)

	p := provider.Get()
	resp, err := p.ClassService.GetClassMembers(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
