package db

import (
	"fmt"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testSeq int64

// InitTest points the package at a fresh in-memory sqlite database. Each call
// gets its own database so tests do not see each other's rows.
func InitTest() error {
	name := fmt.Sprintf("file:inkwell_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testSeq, 1))
	d, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}
	if err := migrate(d); err != nil {
		return err
	}
	DB = d
	return nil
}
