package show

type ListCatalogReq struct {
	Subject string  `query:"subject" json:"subject"`
	Grade   []int64 `query:"grade" json:"grade"`
	Page    int64   `query:"page" json:"page"`
	Limit   int64   `query:"limit" json:"limit"`
}

type CatalogSet struct {
	Id          string `json:"id"`
	Subject     string `json:"subject"`
	Grade       int64  `json:"grade"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CardCount   int64  `json:"cardCount"`
}

type ListCatalogResp struct {
	Sets  []*CatalogSet `json:"sets"`
	Total int64         `json:"total"`
}
