package show

const (
	SourceCache    = "cache"
	SourceUpstream = "upstream"
	SourceFallback = "fallback"
)

type SuggestReq struct {
	Term  string `query:"term" json:"term" vd:"len($)>0"`
	Count int    `query:"count" json:"count"`
}

type Suggestion struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type SuggestResp struct {
	Suggestions []*Suggestion `json:"suggestions"`
	Source      string        `json:"source"`
}
