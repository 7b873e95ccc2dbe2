package show

import (
	handler "flashcard-show/biz/adaptor/controller/show"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// Register register routes based on the IDL 'api.${HTTP Method}' annotation.
func Register(r *server.Hertz) {
	root := r.Group("/", rootMw()...)
	{
		_api := root.Group("/api", _apiMw()...)
		{
			_assignments := _api.Group("/assignments")
			_assignments.POST("", handler.CreateAssignment)
			_assignments.GET("/:id", handler.GetAssignment)
			_assignments.DELETE("/:id", handler.DeleteAssignment)
			_assignments.GET("/:id/submission/:studentId", handler.GetSubmission)
			_assignments.POST("/:id/submit", handler.SubmitAssignment)
			_assignments.GET("/:id/submissions", handler.ListSubmissions)
		}
		{
			_classes := _api.Group("/classes")
			_classes.POST("", handler.CreateClass)
			_classes.GET("", handler.ListClasses)
			_classes.POST("/join", handler.JoinClass)
			_classes.GET("/:id/members", handler.GetClassMembers)
			_classes.GET("/:id/assignments", handler.ListAssignments)
		}
		{
			_sets := _api.Group("/sets")
			_sets.POST("", handler.CreateSet)
			_sets.GET("", handler.ListSets)
			_sets.GET("/:id", handler.GetSet)
			_sets.PUT("/:id", handler.UpdateSet)
		}
		{
			_notifications := _api.Group("/notifications")
			_notifications.GET("", handler.ListNotifications)
			_notifications.POST("/:id/read", handler.MarkRead)
		}
		_api.GET("/catalog/sets", handler.ListCatalog)
		_api.GET("/suggestions", append(_suggestionsMw(), handler.Suggest)...)
	}
}
