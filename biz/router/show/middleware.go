package show

import (
	"flashcard-show/biz/adaptor"
	"flashcard-show/biz/infrastructure/config"

	"github.com/cloudwego/hertz/pkg/app"
	"golang.org/x/time/rate"
)

func rootMw() []app.HandlerFunc {
	return nil
}

func _apiMw() []app.HandlerFunc {
	return nil
}

// _suggestionsMw AI联想按ip限流
func _suggestionsMw() []app.HandlerFunc {
	r, burst := rate.Limit(2), 5
	if c := config.GetConfig(); c != nil && c.Suggestion.Rate > 0 {
		r, burst = rate.Limit(c.Suggestion.Rate), max(c.Suggestion.Burst, 1)
	}
	return []app.HandlerFunc{adaptor.RateLimiter(r, burst)}
}
