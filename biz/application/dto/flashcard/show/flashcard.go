package show

import (
	"time"

	"flashcard-show/biz/application/dto/basic"
)

type Card struct {
	Term       string  `json:"term" vd:"len($)>0"`
	Definition string  `json:"definition" vd:"len($)>0"`
	Image      *string `json:"image,omitempty"`
}

type SetInfo struct {
	Id          string    `json:"id"`
	OwnerId     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Cards       []*Card   `json:"cards"`
	UpdateTime  time.Time `json:"updateTime"`
}

type CreateSetReq struct {
	Title       string  `json:"title" vd:"len($)>0"`
	Description string  `json:"description"`
	Cards       []*Card `json:"cards"`
}

type CreateSetResp struct {
	SetId string `json:"setId"`
}

type GetSetReq struct {
	SetId string `path:"id" json:"-"`
}

type UpdateSetReq struct {
	SetId       string  `path:"id" json:"-"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Cards       []*Card `json:"cards,omitempty"`
}

type ListSetsReq struct {
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions,omitempty"`
}

type ListSetsResp struct {
	Sets  []*SetInfo `json:"sets"`
	Total int64      `json:"total"`
}
