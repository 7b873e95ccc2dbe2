package consts

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

func (en *Errno) Code() codes.Code {
	return en.code
}

// HTTPStatus 业务错误到http状态码的映射, 自定义业务码统一按400处理
func (en *Errno) HTTPStatus() int {
	switch en.code {
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unknown, codes.Internal, codes.Unavailable:
		return http.StatusInternalServerError
	}
	if en.code >= 1000 {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// 定义常量错误
var (
	ErrForbidden         = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrNotAuthentication = NewErrno(codes.Unauthenticated, errors.New("not authentication"))
	ErrNotTeacher        = NewErrno(codes.PermissionDenied, errors.New("only teachers can do this"))
	ErrNotClassOwner     = NewErrno(codes.PermissionDenied, errors.New("not the owner of this class"))
	ErrNotClassMember    = NewErrno(codes.PermissionDenied, errors.New("not a member of this class"))
	ErrCreateClass       = NewErrno(codes.Code(1015), errors.New("create class failed"))
	ErrGetClassList      = NewErrno(codes.Code(1016), errors.New("get class list failed"))
	ErrJoinClass         = NewErrno(codes.Code(1017), errors.New("join class failed"))
	ErrGetClassMembers   = NewErrno(codes.Code(1018), errors.New("get class members failed"))
	ErrCreateSet         = NewErrno(codes.Code(1040), errors.New("create flashcard set failed"))
	ErrEmptySet          = NewErrno(codes.InvalidArgument, errors.New("flashcard set has no cards"))
	ErrCreateAssignment  = NewErrno(codes.Code(1041), errors.New("create assignment failed"))
	ErrInvalidMode       = NewErrno(codes.InvalidArgument, errors.New("mode must be test or learn"))
	ErrInvalidDeadline   = NewErrno(codes.InvalidArgument, errors.New("deadline must be in the future"))
	ErrInvalidScore      = NewErrno(codes.InvalidArgument, errors.New("score must be between 0 and total"))
	ErrGetAssignment     = NewErrno(codes.Internal, errors.New("get assignment failed"))
	ErrUpdateSet         = NewErrno(codes.Code(1042), errors.New("update flashcard set failed"))
	ErrSubmit            = NewErrno(codes.Internal, errors.New("submit assignment failed"))
	ErrGetSubmission     = NewErrno(codes.Internal, errors.New("get submission failed"))
	ErrSuggestion        = NewErrno(codes.Code(1050), errors.New("suggestion unavailable"))
	ErrListCatalog       = NewErrno(codes.Code(1060), errors.New("list catalog failed"))
	ErrNotification      = NewErrno(codes.Code(1070), errors.New("get notifications failed"))
	ErrRateLimited       = NewErrno(codes.ResourceExhausted, errors.New("too many requests"))
	ErrHasSubmissions    = NewErrno(codes.FailedPrecondition, errors.New("assignment already has submissions"))
	ErrDeleteAssignment  = NewErrno(codes.Code(1043), errors.New("delete assignment failed"))
)

// 作业提交的业务结果, 非异常
var (
	ErrDeadlinePassed   = NewErrno(codes.FailedPrecondition, errors.New("deadline passed"))
	ErrAlreadySubmitted = NewErrno(codes.AlreadyExists, errors.New("already submitted"))
)

// ErrInvalidParams 调用时错误
var (
	ErrInvalidParams = NewErrno(codes.InvalidArgument, errors.New("invalid params"))
	ErrCall          = NewErrno(codes.Unknown, errors.New("call upstream failed, please retry"))
)

// 数据库相关错误
var (
	ErrNotFound        = NewErrno(codes.NotFound, errors.New("not found"))
	ErrInvalidObjectId = NewErrno(codes.InvalidArgument, errors.New("invalid id"))
	ErrUpdate          = NewErrno(codes.Code(2001), errors.New("update failed"))
)
