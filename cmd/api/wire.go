//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式：
//   wire gen ./cmd/api
// 生成wire_gen.go后，可用InitializeApp()替代main.go中的手动组装
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/xiebiao/bookmart/internal/application/book"
	appcart "github.com/xiebiao/bookmart/internal/application/cart"
	apporder "github.com/xiebiao/bookmart/internal/application/order"
	appuser "github.com/xiebiao/bookmart/internal/application/user"
	"github.com/xiebiao/bookmart/internal/domain/book"
	"github.com/xiebiao/bookmart/internal/domain/cart"
	"github.com/xiebiao/bookmart/internal/domain/user"
	"github.com/xiebiao/bookmart/internal/infrastructure/config"
	"github.com/xiebiao/bookmart/internal/infrastructure/event"
	"github.com/xiebiao/bookmart/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookmart/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookmart/internal/interface/http/handler"
	"github.com/xiebiao/bookmart/internal/interface/http/middleware"
	"github.com/xiebiao/bookmart/pkg/jwt"
	"github.com/xiebiao/bookmart/pkg/mq"
)

// infrastructureSet 基础设施层：配置、MySQL、Redis
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	cart.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appcart.NewAddItemUseCase,
	appcart.NewListCartUseCase,
	appcart.NewUpdateQuantityUseCase,
	appcart.NewRemoveItemUseCase,
	appcart.NewClearCartUseCase,
	apporder.NewCheckoutUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewUpdateStatusUseCase,
)

// middlewareSet 中间件与跨层组件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideCheckoutLock,
	provideEventPublisher,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
)

// provideJWTManager 从配置提取JWT参数
// Wire无法自动从Config提取字段，需要手写Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expire)
}

// provideSessionStore 从Redis客户端创建Token黑名单存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideCheckoutLock 从Redis客户端创建结算互斥锁
func provideCheckoutLock(client *goredis.Client) apporder.CheckoutLock {
	return redis.NewCheckoutLock(client)
}

// provideEventPublisher 创建订单事件发布者
// MQ未启用时降级为Noop实现，结算流程不受影响
func provideEventPublisher(cfg *config.Config) (apporder.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return apporder.NoopPublisher{}, nil
	}
	mqPublisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, err
	}
	return event.NewOrderPublisher(mqPublisher, cfg.MQ.Exchange), nil
}

// provideGinEngine 创建并配置Gin引擎，复用main.go中的registerRoutes
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.Service))
	}

	registerRoutes(r, userHandler, bookHandler, cartHandler, orderHandler, authMiddleware)

	return r
}

// InitializeApp 组装整个应用，返回配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
