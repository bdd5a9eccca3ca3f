// Package gormstore is the Postgres backend, selected with
// DATABASE_DRIVER=postgres.
package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/store"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	DB *gorm.DB
}

// Open connects, runs AutoMigrate and returns the bundled store.
func Open(dsn string) (*store.Store, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		return nil, err
	}
	// AutoMigrate is non-destructive: creates tables/columns/indexes
	if err := db.AutoMigrate(&accountRow{}, &projectRow{}); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{DB: db}
	return &store.Store{
		Accounts: s,
		Projects: s,
		PingFn:   sqlDB.PingContext,
		CloseFn: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicateEmail
	}
	return err
}
