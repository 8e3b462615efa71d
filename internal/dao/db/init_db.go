// Package db owns the gorm connection, schema migration, and the
// Repositories aggregate handed to the service layer.
package db

import (
	"fmt"

	"pigeon_chat_server/internal/config"
	"pigeon_chat_server/internal/dao/db/repository"
	"pigeon_chat_server/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Init opens the configured backend, migrates the schema, and returns
// the Repositories aggregate. The "sqlite" driver runs an embedded
// in-memory database for offline demos; everything above this package
// is identical in both modes.
func Init() *repository.Repositories {
	conf := config.GetConfig()

	var (
		db  *gorm.DB
		err error
	)
	switch conf.StorageConfig.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlitedriver.Open("file::memory:?cache=shared"), &gorm.Config{})
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			conf.MysqlConfig.User,
			conf.MysqlConfig.Password,
			conf.MysqlConfig.Host,
			conf.MysqlConfig.Port,
			conf.MysqlConfig.DatabaseName,
		)
		db, err = gorm.Open(mysqldriver.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		zap.L().Fatal("open database failed", zap.Error(err))
	}

	if err := Migrate(db); err != nil {
		zap.L().Fatal("auto migrate failed", zap.Error(err))
	}

	return repository.NewRepositories(db)
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.UserInfo{},
		&model.Chat{},
		&model.ChatMember{},
		&model.Message{},
		&model.Friend{},
		&model.Story{},
	)
}
