package flashcard

import (
	"strings"
)

// MatchCards 取出词条以 term 开头(忽略大小写)的卡片, 同一定义只保留一次
func MatchCards(sets []*Set, term string, limit int) []*Card {
	prefix := strings.ToLower(strings.TrimSpace(term))
	seen := make(map[string]struct{})
	cards := make([]*Card, 0, limit)
	for _, s := range sets {
		for _, c := range s.Cards {
			if len(cards) >= limit {
				return cards
			}
			if !strings.HasPrefix(strings.ToLower(c.Term), prefix) {
				continue
			}
			if _, ok := seen[c.Definition]; ok {
				continue
			}
			seen[c.Definition] = struct{}{}
			cards = append(cards, c)
		}
	}
	return cards
}
