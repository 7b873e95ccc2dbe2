package consts

var PageSize int64 = 10

const AppId = 21

// 数据库相关
const (
	ID           = "_id"
	UserID       = "user_id"
	ClassID      = "class_id"
	AssignmentID = "assignment_id"
	StudentID    = "student_id"
	CreatorID    = "creator_id"
	InviteCode   = "invite_code"
	OwnerID      = "owner_id"
	Recipient    = "recipient"
	CreateTime   = "create_time"
	SubmitTime   = "submit_time"
	Timestamp    = "timestamp"
)

// http
const (
	Get             = "GET"
	Post            = "POST"
	ContentTypeJson = "application/json"
	CharSetUTF8     = "UTF-8"
	Authorization   = "Authorization"
	HeaderTraceId   = "X-Trace-Id"
)

// 角色
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// 作业模式
const (
	ModeTest  = "test"
	ModeLearn = "learn"
)

// 通知类型
const (
	NotifySubmission = "submission"
)

// 默认值
const (
	DefaultPerQuestionSeconds = 30
	DefaultSuggestionCount    = 5
	InviteCodeLength          = 8
)
