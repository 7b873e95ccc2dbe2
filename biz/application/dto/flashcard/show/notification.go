package show

import (
	"time"

	"flashcard-show/biz/application/dto/basic"
)

type ListNotificationsReq struct {
	UnreadOnly        bool                     `query:"unreadOnly" json:"unreadOnly"`
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions,omitempty"`
}

type NotificationInfo struct {
	Id        string         `json:"id"`
	Kind      string         `json:"kind"`
	Payload   map[string]any `json:"payload,omitempty"`
	Read      bool           `json:"read"`
	Timestamp time.Time      `json:"timestamp"`
}

type ListNotificationsResp struct {
	Notifications []*NotificationInfo `json:"notifications"`
	Total         int64               `json:"total"`
}

type MarkReadReq struct {
	NotificationId string `path:"id" json:"-"`
}
