package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/bookmart/pkg/metrics"
	"github.com/xiebiao/bookmart/pkg/mq"
	"github.com/xiebiao/bookmart/pkg/response"
	"github.com/xiebiao/bookmart/pkg/tracing"
)

// main 主程序入口（手动依赖注入）
// 依赖链：Repository ← Service ← UseCase ← Handler ← Router
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	fmt.Printf("✓ 配置加载成功: port=%d mode=%s db=%s:%d/%s redis=%s\n",
		cfg.Server.Port, cfg.Server.Mode,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName,
		cfg.Redis.Addr())

	// 2. 指标注册
	metrics.InitMetrics()

	// 3. 链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.Service, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer shutdown(context.Background())
	}

	// 4. 基础设施连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 订单事件发布者（MQ未启用时用Noop实现）
	var publisher apporder.EventPublisher = apporder.NoopPublisher{}
	if cfg.MQ.Enabled {
		mqPublisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化MQ失败: %v", err)
		}
		defer mqPublisher.Close()
		publisher = event.NewOrderPublisher(mqPublisher, cfg.MQ.Exchange)
	}

	// 6. 依赖组装
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	checkoutLock := redis.NewCheckoutLock(redisClient)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expire)

	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	cartService := cart.NewService(cartRepo)

	registerUseCase := appuser.NewRegisterUseCase(userService, jwtManager)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore, jwtManager)
	publishBookUseCase := appbook.NewPublishBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)
	addItemUseCase := appcart.NewAddItemUseCase(cartService)
	listCartUseCase := appcart.NewListCartUseCase(cartService)
	updateQtyUseCase := appcart.NewUpdateQuantityUseCase(cartService)
	removeItemUseCase := appcart.NewRemoveItemUseCase(cartService)
	clearCartUseCase := appcart.NewClearCartUseCase(cartService)
	checkoutUseCase := apporder.NewCheckoutUseCase(cartRepo, orderRepo, txManager, checkoutLock, publisher)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo)
	updateStatusUseCase := apporder.NewUpdateStatusUseCase(orderRepo, publisher)

	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	bookHandler := handler.NewBookHandler(publishBookUseCase, listBooksUseCase, updateBookUseCase, deleteBookUseCase)
	cartHandler := handler.NewCartHandler(addItemUseCase, listCartUseCase, updateQtyUseCase, removeItemUseCase, clearCartUseCase)
	orderHandler := handler.NewOrderHandler(checkoutUseCase, listOrdersUseCase, updateStatusUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. Gin引擎与路由
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.Service))
	}

	registerRoutes(r, userHandler, bookHandler, cartHandler, orderHandler, authMiddleware)

	// 8. 启动服务（支持优雅关闭）
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("🚀 服务启动: http://localhost%s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("收到退出信号，开始关闭...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("关闭服务失败: %v", err)
	}
	log.Println("服务已退出")
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"message": "pong", "status": "healthy"})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档（http://localhost:8080/swagger/index.html）
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// 认证模块
		auth := api.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 图书模块
		books := api.Group("/books")
		{
			// 公开接口
			books.GET("", bookHandler.List)
			books.GET("/:id", bookHandler.Get)

			// 卖家接口
			sellerBooks := books.Group("", authMiddleware.RequireAuth(), authMiddleware.RequireRole(string(user.RoleSeller)))
			{
				sellerBooks.GET("/my", bookHandler.ListMine)
				sellerBooks.POST("", bookHandler.Publish)
				sellerBooks.PATCH("/:id", bookHandler.Update)
				sellerBooks.DELETE("/:id", bookHandler.Delete)
			}
		}

		// 购物车模块（仅买家）
		cartGroup := api.Group("/cart")
		cartGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(string(user.RoleBuyer)))
		{
			cartGroup.POST("", cartHandler.Add)
			cartGroup.GET("", cartHandler.List)
			cartGroup.PATCH("/:id", cartHandler.UpdateQuantity)
			cartGroup.DELETE("/:id", cartHandler.Remove)
			cartGroup.DELETE("", cartHandler.Clear)
		}

		// 订单模块
		orders := api.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("", authMiddleware.RequireRole(string(user.RoleBuyer)), orderHandler.Checkout)
			orders.GET("", authMiddleware.RequireRole(string(user.RoleBuyer)), orderHandler.ListMine)
			orders.GET("/seller", authMiddleware.RequireRole(string(user.RoleSeller)), orderHandler.ListSeller)
			orders.PATCH("/:id", authMiddleware.RequireRole(string(user.RoleSeller)), orderHandler.UpdateStatus)
		}
	}
}
