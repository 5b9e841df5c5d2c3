package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookmart/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 连接池参数来自配置
// 3. debug模式打印SQL，其余模式静默
// 4. 启动时AutoMigrate（生产环境应改用版本化迁移脚本）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&CartItemModel{},
		&OrderModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:50;not null;comment:用户名"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Role      string    `gorm:"size:10;not null;default:buyer;comment:角色(buyer/seller)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明：
// 1. 价格使用int64存储"分"为单位（避免浮点数精度问题）
// 2. SellerID关联用户表，支持查询卖家发布的全部图书
// 3. 软删除：已删除的书对查询不可见，但购物车/订单里的引用还在
type BookModel struct {
	ID          uint           `gorm:"primaryKey"`
	SellerID    uint           `gorm:"index;not null;comment:卖家用户ID"`
	Title       string         `gorm:"size:200;not null;comment:书名"`
	Description string         `gorm:"type:text;comment:图书描述"`
	Price       int64          `gorm:"not null;comment:单价(分)"`
	Stock       int            `gorm:"default:0;comment:库存数量"`
	ImageURL    string         `gorm:"size:500;comment:封面图片URL"`
	CreatedAt   time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// CartItemModel GORM购物车条目模型
// (buyer_id, book_id)复合唯一索引是替换式Upsert的基础
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	BuyerID   uint      `gorm:"uniqueIndex:idx_buyer_book;not null;comment:买家用户ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_buyer_book;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel GORM订单模型
// 设计说明：
// 1. 一个订单对应一本图书的一次购买（结算时逐条目拆单）
// 2. TotalPrice是下单时的金额快照，图书改价不影响历史订单
// 3. Status使用tinyint存储，取值见domain/order的状态机
type OrderModel struct {
	ID         uint      `gorm:"primaryKey"`
	BuyerID    uint      `gorm:"index;not null;comment:买家用户ID"`
	SellerID   uint      `gorm:"index;not null;comment:卖家用户ID"`
	BookID     uint      `gorm:"index;not null;comment:图书ID"`
	Quantity   int       `gorm:"not null;comment:购买数量"`
	TotalPrice int64     `gorm:"not null;comment:总金额(分)"`
	Status     int       `gorm:"index;type:tinyint;default:0;comment:订单状态(0待发货1已发货2已送达3已取消)"`
	CreatedAt  time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}
