package database

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options 连接池与日志配置，缺省值面向小规模部署
type Options struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	// LogMode 取 silent / warn / info，info 会打印全部 SQL
	LogMode string
}

// DefaultOptions 缺省连接配置
func DefaultOptions() Options {
	return Options{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
		LogMode:         "info",
	}
}

// OptionsFromEnv 从环境变量读取连接配置，未设置的项保留缺省值
// DB_MAX_IDLE_CONNS / DB_MAX_OPEN_CONNS / DB_CONN_MAX_LIFETIME_MINUTES / DB_LOG_MODE
func OptionsFromEnv() Options {
	opts := DefaultOptions()
	if v, err := strconv.Atoi(os.Getenv("DB_MAX_IDLE_CONNS")); err == nil && v > 0 {
		opts.MaxIdleConns = v
	}
	if v, err := strconv.Atoi(os.Getenv("DB_MAX_OPEN_CONNS")); err == nil && v > 0 {
		opts.MaxOpenConns = v
	}
	if v, err := strconv.Atoi(os.Getenv("DB_CONN_MAX_LIFETIME_MINUTES")); err == nil && v > 0 {
		opts.ConnMaxLifetime = time.Duration(v) * time.Minute
	}
	if v := os.Getenv("DB_LOG_MODE"); v != "" {
		opts.LogMode = v
	}
	return opts
}

// logLevel 把配置字符串映射到 GORM 日志级别，认不出的值按 warn 处理
func logLevel(mode string) logger.LogLevel {
	switch mode {
	case "silent":
		return logger.Silent
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// InitDB 初始化数据库连接，连接配置取自环境变量
// dsn: 数据库连接字符串
// models: 需要自动建表/迁移的结构体指针
func InitDB(dsn string, models ...interface{}) *gorm.DB {
	return InitDBWithOptions(dsn, OptionsFromEnv(), models...)
}

// InitDBWithOptions 按给定连接配置初始化数据库
func InitDBWithOptions(dsn string, opts Options, models ...interface{}) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(opts.LogMode)),
	})
	if err != nil {
		log.Fatalf("数据库连接失败 (Database Connection Failed): %v", err)
	}

	// 获取底层的 sqlDB 对象，用于设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("获取底层 SQL DB 失败: %v", err)
	}
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	log.Println("数据库连接成功 (Database Connected Successfully)")

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			log.Fatalf("自动建表出错： %v", err)
		}
	}

	return db
}
