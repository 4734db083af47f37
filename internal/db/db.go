package db

import (
	"fmt"
	"log"
	"perapera/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config 所有连接共享的 gorm 配置，唯一键冲突翻译成 gorm.ErrDuplicatedKey
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// Open 连接 PostgreSQL 并完成迁移与标签 seed
func Open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Println("Database connection established")

	if err := Setup(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Setup 迁移表结构并写入预设标签，测试里的 SQLite 连接也走这里
func Setup(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Post{},
		&models.Vote{},
		&models.Follow{},
		&models.Comment{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Println("Database migration completed")

	return SeedTags(conn)
}

// SeedTags 标签表为空时写入预设目录
func SeedTags(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Tag{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count tags: %w", err)
	}
	if count > 0 {
		log.Println("Tags already seeded, skipping")
		return nil
	}

	tags := make([]models.Tag, len(models.TagCatalog))
	copy(tags, models.TagCatalog)
	if err := conn.Create(&tags).Error; err != nil {
		return fmt.Errorf("seed tags: %w", err)
	}
	log.Println("Initial tags created successfully")
	return nil
}

// Close 关闭底层连接池
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
