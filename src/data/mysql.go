package data

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Setting is one row of the optional bot configuration table.
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:64;uniqueIndex"`
	Value string `gorm:"size:512"`
}

func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	return db
}
