package infrastructure

import (
	"fmt"
	"time"

	driver "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// MySQLConfig 描述预订存储的连接参数，由组合根从环境注入
type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// OpenMySQL 建立 GORM 连接并迁移预订表。
// DSN 通过驱动自己的 Config 构造，避免手拼连接串的转义问题。
func OpenMySQL(cfg MySQLConfig) (*gorm.DB, error) {
	dsnCfg := driver.NewConfig()
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	dsnCfg.User = cfg.User
	dsnCfg.Passwd = cfg.Password
	dsnCfg.DBName = cfg.Database
	dsnCfg.ParseTime = true
	dsnCfg.Loc = time.UTC

	db, err := gorm.Open(gormmysql.Open(dsnCfg.FormatDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to mysql at %s: %w", dsnCfg.Addr, err)
	}
	if err := db.AutoMigrate(&ReservationModel{}); err != nil {
		return nil, fmt.Errorf("migrate reservation schema: %w", err)
	}
	return db, nil
}
