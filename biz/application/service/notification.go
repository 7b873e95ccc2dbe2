package service

import (
	"context"
	"errors"

	"flashcard-show/biz/adaptor"
	"flashcard-show/biz/application/dto/basic"
	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/repository/notification"
	"flashcard-show/biz/infrastructure/util/log"
	"flashcard-show/biz/infrastructure/util/page"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type INotificationService interface {
	Notify(ctx context.Context, recipient, kind string, payload map[string]any) error
	ListNotifications(ctx context.Context, req *show.ListNotificationsReq) (*show.ListNotificationsResp, error)
	MarkRead(ctx context.Context, req *show.MarkReadReq) (*basic.Response, error)
}

type NotificationService struct {
	NotificationMapper notification.IMongoMapper
}

var NotificationServiceSet = wire.NewSet(
	wire.Struct(new(NotificationService), "*"),
	wire.Bind(new(INotificationService), new(*NotificationService)),
)

// Notify 写入收件箱
func (s *NotificationService) Notify(ctx context.Context, recipient, kind string, payload map[string]any) error {
	if recipient == "" {
		return consts.ErrInvalidParams
	}
	return s.NotificationMapper.Insert(ctx, &notification.Notification{
		Recipient: recipient,
		Kind:      kind,
		Payload:   payload,
		Timestamp: timeNow(),
	})
}

func (s *NotificationService) ListNotifications(ctx context.Context, req *show.ListNotificationsReq) (*show.ListNotificationsResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	p, size := page.ParsePageOpt(req.PaginationOptions)
	data, total, err := s.NotificationMapper.FindByRecipient(ctx, meta.GetUserId(), req.UnreadOnly, p, size)
	if err != nil {
		log.CtxError(ctx, "获取通知失败: %v", err)
		return nil, consts.ErrNotification
	}

	return &show.ListNotificationsResp{
		Notifications: lo.Map(data, func(n *notification.Notification, _ int) *show.NotificationInfo {
			return &show.NotificationInfo{
				Id:        n.ID.Hex(),
				Kind:      n.Kind,
				Payload:   n.Payload,
				Read:      n.Read,
				Timestamp: n.Timestamp,
			}
		}),
		Total: total,
	}, nil
}

// MarkRead 只能标记自己的通知
func (s *NotificationService) MarkRead(ctx context.Context, req *show.MarkReadReq) (*basic.Response, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	err := s.NotificationMapper.MarkRead(ctx, req.NotificationId, meta.GetUserId())
	switch {
	case err == nil:
		return &basic.Response{Code: 0, Msg: "ok"}, nil
	case errors.Is(err, consts.ErrNotFound), errors.Is(err, consts.ErrInvalidObjectId):
		return nil, consts.ErrNotFound
	default:
		log.CtxError(ctx, "标记已读失败: %v", err)
		return nil, consts.ErrUpdate
	}
}
