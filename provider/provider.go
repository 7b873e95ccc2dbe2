package provider

import (
	"flashcard-show/biz/application/service"
	"flashcard-show/biz/infrastructure/cache"
	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/repository/assignment"
	"flashcard-show/biz/infrastructure/repository/catalog"
	"flashcard-show/biz/infrastructure/repository/class"
	"flashcard-show/biz/infrastructure/repository/flashcard"
	"flashcard-show/biz/infrastructure/repository/notification"
	"flashcard-show/biz/infrastructure/repository/submission"
	"flashcard-show/biz/infrastructure/storage"

	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Set 测试中注入装配好的依赖
func Set(p *Provider) {
	provider = p
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config              *config.Config
	AssignmentService   service.IAssignmentService
	ClassService        service.IClassService
	FlashcardService    service.IFlashcardService
	NotificationService service.INotificationService
	CatalogService      service.ICatalogService
	SuggestionService   service.ISuggestionService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.AssignmentServiceSet,
	service.ClassServiceSet,
	service.FlashcardServiceSet,
	service.NotificationServiceSet,
	service.CatalogServiceSet,
	service.SuggestionServiceSet,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	assignment.NewMongoMapper,
	wire.Bind(new(assignment.IMongoMapper), new(*assignment.MongoMapper)),
	submission.NewMongoMapper,
	wire.Bind(new(submission.IMongoMapper), new(*submission.MongoMapper)),
	class.NewMongoMapper,
	wire.Bind(new(class.IMongoMapper), new(*class.MongoMapper)),
	class.NewMemberMongoMapper,
	wire.Bind(new(class.IMemberMongoMapper), new(*class.MemberMongoMapper)),
	flashcard.NewMongoMapper,
	wire.Bind(new(flashcard.IMongoMapper), new(*flashcard.MongoMapper)),
	notification.NewMongoMapper,
	wire.Bind(new(notification.IMongoMapper), new(*notification.MongoMapper)),
	catalog.NewMapperFromConfig,
	cache.NewSuggestionCacheMapper,
	wire.Bind(new(cache.ISuggestionCacheMapper), new(*cache.SuggestionCacheMapper)),
	storage.NewImageSigner,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
