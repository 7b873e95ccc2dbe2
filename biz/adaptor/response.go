package adaptor

import (
	"context"
	"errors"
	"net/http"

	"flashcard-show/biz/application/dto/basic"
	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/util"
	"flashcard-show/biz/infrastructure/util/log"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
)

// PostProcess 记录请求日志并写回响应, 业务错误按 Errno 映射状态码
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	postProcess(ctx, c, req, resp, err, http.StatusOK)
}

// PostProcessCreated 成功时返回 201
func PostProcessCreated(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	postProcess(ctx, c, req, resp, err, http.StatusCreated)
}

// BadRequest 参数绑定失败
func BadRequest(ctx context.Context, c *app.RequestContext, err error) {
	log.CtxInfo(ctx, "[%s] bind failed, err=%v", c.Path(), err)
	c.JSON(http.StatusBadRequest, &basic.Response{
		Code: int64(codes.InvalidArgument),
		Msg:  err.Error(),
	})
}

func postProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error, okStatus int) {
	if !skipLog(string(c.Path())) {
		log.CtxInfo(ctx, "[%s] req=%s, resp=%s, err=%v", c.Path(), util.JSONF(req), util.JSONF(resp), err)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		c.Header(consts.HeaderTraceId, sc.TraceID().String())
	}

	if err == nil {
		c.JSON(okStatus, resp)
		return
	}

	var errno *consts.Errno
	if errors.As(err, &errno) {
		c.JSON(errno.HTTPStatus(), &basic.Response{
			Code: int64(errno.Code()),
			Msg:  errno.Error(),
		})
		return
	}

	log.CtxError(ctx, "[%s] unexpected error: %v", c.Path(), err)
	c.JSON(http.StatusInternalServerError, &basic.Response{
		Code: int64(codes.Internal),
		Msg:  "internal error",
	})
}

func skipLog(path string) bool {
	conf := config.GetConfig()
	if conf == nil {
		return false
	}
	return lo.Contains(conf.Log.NoLogPaths, path)
}
