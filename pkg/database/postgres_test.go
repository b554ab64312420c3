package database

import (
	"testing"
	"time"

	"gorm.io/gorm/logger"
)

func TestOptionsFromEnv_Defaults(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "")
	t.Setenv("DB_LOG_MODE", "")

	opts := OptionsFromEnv()
	if opts.MaxIdleConns != 10 || opts.MaxOpenConns != 100 {
		t.Errorf("缺省连接池大小不符: %+v", opts)
	}
	if opts.ConnMaxLifetime != time.Hour {
		t.Errorf("缺省连接寿命应为 1 小时，实际 %v", opts.ConnMaxLifetime)
	}
	if opts.LogMode != "info" {
		t.Errorf("缺省日志级别应为 info，实际 %s", opts.LogMode)
	}
}

func TestOptionsFromEnv_Overrides(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "5")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "30")
	t.Setenv("DB_LOG_MODE", "silent")

	opts := OptionsFromEnv()
	if opts.MaxIdleConns != 5 || opts.MaxOpenConns != 50 {
		t.Errorf("环境变量覆盖未生效: %+v", opts)
	}
	if opts.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("连接寿命应为 30 分钟，实际 %v", opts.ConnMaxLifetime)
	}
	if opts.LogMode != "silent" {
		t.Errorf("日志级别应为 silent，实际 %s", opts.LogMode)
	}

	// 非法数值不覆盖缺省值
	t.Setenv("DB_MAX_OPEN_CONNS", "abc")
	if opts := OptionsFromEnv(); opts.MaxOpenConns != 100 {
		t.Errorf("非法数值应回落缺省，实际 %d", opts.MaxOpenConns)
	}
}

func TestLogLevel(t *testing.T) {
	if logLevel("silent") != logger.Silent {
		t.Errorf("silent 映射错误")
	}
	if logLevel("info") != logger.Info {
		t.Errorf("info 映射错误")
	}
	// 认不出的值按 warn 处理
	if logLevel("verbose") != logger.Warn {
		t.Errorf("未知级别应按 warn 处理")
	}
}
