package configsdatabase

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
)

// InitDB opens the Postgres connection used by the whole process and hands
// it to configs.SetDB. TranslateError is required: unique-index violations
// must surface as gorm.ErrDuplicatedKey so the check-in register can treat
// a duplicate (event, guest) insert as "already arrived".
func InitDB() {
	cfg := configs.Get()

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	conn, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		configslog.Log.Fatal("database connection failed", zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("database handle could not be obtained", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	configs.SetDB(conn)
	configslog.SLog.Infof("connected to database %s@%s:%d", cfg.DBName, cfg.DBHost, cfg.DBPort)
}

// CloseDB closes the underlying connection pool.
func CloseDB() {
	sqlDB, err := configs.GetDB().DB()
	if err != nil {
		configslog.Log.Error("database handle could not be obtained on close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("database close failed", zap.Error(err))
	}
}
