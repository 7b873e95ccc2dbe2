package basic

type PaginationOptions struct {
	Page  *int64 `form:"page" json:"page,omitempty" query:"page"`
	Limit *int64 `form:"limit" json:"limit,omitempty" query:"limit"`
}

func (p *PaginationOptions) GetPage() int64 {
	if p == nil || p.Page == nil {
		return 0
	}
	return *p.Page
}

func (p *PaginationOptions) GetLimit() int64 {
	if p == nil || p.Limit == nil {
		return 0
	}
	return *p.Limit
}

// UserMeta 身份服务签发的jwt中携带的用户信息
type UserMeta struct {
	UserId          string `json:"userId"`
	AppId           int64  `json:"appId"`
	DeviceId        string `json:"deviceId"`
	Role            string `json:"role"`
	SessionUserId   string `json:"sessionUserId"`
	SessionAppId    int64  `json:"sessionAppId"`
	SessionDeviceId string `json:"sessionDeviceId"`
}

func (u *UserMeta) GetUserId() string {
	if u == nil {
		return ""
	}
	return u.UserId
}

func (u *UserMeta) GetRole() string {
	if u == nil {
		return ""
	}
	return u.Role
}

type Response struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}
