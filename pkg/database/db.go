package database

import (
	"github.com/google/wire"
	"gorm.io/gorm"
)

// ProviderSet 提供数据库相关的依赖
var ProviderSet = wire.NewSet(NewDatabase, NewGormDB)

// DB 定义数据库接口（抽象）
type DB interface {
	// DB 返回底层的 *gorm.DB
	DB() *gorm.DB
	// Transaction 在单个数据库事务内执行 fn
	Transaction(fn func(tx *gorm.DB) error) error
}

// GormDB GORM 数据库实现
type GormDB struct {
	db *gorm.DB
}

// NewGormDB 创建 GORM 数据库实例
func NewGormDB(db *gorm.DB) DB {
	return &GormDB{db: db}
}

// DB 返回底层的 *gorm.DB
func (g *GormDB) DB() *gorm.DB {
	return g.db
}

// Transaction 执行事务，fn 返回 error 时回滚
func (g *GormDB) Transaction(fn func(tx *gorm.DB) error) error {
	return g.db.Transaction(fn)
}
