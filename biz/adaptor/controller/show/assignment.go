package show

import (
	"context"

	"flashcard-show/biz/adaptor"
	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// CreateAssignment .
// @router /api/assignments [POST]
func CreateAssignment(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.CreateAssignmentReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.AssignmentService.CreateAssignment(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcessCreated(ctx, c, &req, resp, err)
}

// GetAssignment .
// @router /api/assignments/:id [GET]
func GetAssignment(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.GetAssignmentReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.AssignmentService.GetAssignment(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetSubmission .
// @router /api/assignments/:id/submission/:studentId [GET]
func GetSubmission(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.GetSubmissionReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.AssignmentService.GetSubmission(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SubmitAssignment 成功201, 截止400, 重复提交409
// @router /api/assignments/:id/submit [POST]
func SubmitAssignment(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.SubmitAssignmentReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.AssignmentService.SubmitAssignment(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcessCreated(ctx, c, &req, resp, err)
}

// DeleteAssignment .
// @router /api/assignments/:id [DELETE]
func DeleteAssignment(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.DeleteAssignmentReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}

	p := provider.Get()
	resp, err := p.AssignmentService.DeleteAssignment(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListSubmissions .
// @router /api/assignments/:id/submissions [GET]
func ListSubmissions(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.ListSubmissionsReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}
	req.PaginationOptions = bindPage(c)

	p := provider.Get()
	resp, err := p.AssignmentService.ListSubmissions(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListAssignments .
// @router /api/classes/:id/assignments [GET]
func ListAssignments(ctx context.Context, c *app.RequestContext) {
	var err error
	var req show.ListAssignmentsReq
	err = c.BindAndValidate(&req)
	if err != nil {
		adaptor.BadRequest(ctx, c, err)
		return
	}
	req.PaginationOptions = bindPage(c)

	p := provider.Get()
	resp, err := p.AssignmentService.ListAssignments(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
