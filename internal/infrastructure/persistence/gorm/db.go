package gorm

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/finchmedia/finch/pkg/config"
	"github.com/finchmedia/finch/pkg/interfaces"
)

// NewDB opens the postgres connection, configures the pool, and runs
// migrations.
func NewDB(cfg config.DatabaseConfig, logger interfaces.Logger, debug bool) (*gorm.DB, func(), error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: newGormLogger(logger, debug),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt: true,
	})
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)

	if err := AutoMigrate(db); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		sqlDB.Close()
	}
	return db, cleanup, nil
}

// AutoMigrate creates or updates the catalog schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CategoryModel{},
		&GenreModel{},
		&GenreCategoryModel{},
		&CastMemberModel{},
		&VideoModel{},
		&VideoCategoryModel{},
		&VideoGenreModel{},
		&VideoCastMemberModel{},
	)
}

// gormLogger adapts the service logger for GORM.
type gormLogger struct {
	logger interfaces.Logger
	debug  bool
}

func newGormLogger(logger interfaces.Logger, debug bool) gormlogger.Interface {
	return &gormLogger{logger: logger, debug: debug}
}

func (l *gormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.logger.Info(msg, interfaces.Any("data", data))
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.logger.Warn(msg, interfaces.Any("data", data))
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.logger.Error(msg, interfaces.Any("data", data))
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && err != gorm.ErrRecordNotFound {
		l.logger.Error("sql error",
			interfaces.Error(err),
			interfaces.String("sql", sql),
			interfaces.Any("rows", rows))
		return
	}

	if l.debug {
		l.logger.Debug("sql trace",
			interfaces.String("sql", sql),
			interfaces.Any("rows", rows),
			interfaces.Any("elapsed", elapsed))
	} else if elapsed > 200*time.Millisecond {
		l.logger.Warn("slow sql query",
			interfaces.String("sql", sql),
			interfaces.Any("rows", rows),
			interfaces.Any("elapsed", elapsed))
	}
}
