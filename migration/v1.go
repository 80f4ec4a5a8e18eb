package migration

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// v1 last_locationsにcaptured_atインデックスを追加
func v1() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "1",
		Migrate: func(db *gorm.DB) error {
			if db.Migrator().HasIndex(&v1LastLocation{}, "idx_last_locations_captured_at") {
				return nil
			}
			return db.Migrator().CreateIndex(&v1LastLocation{}, "idx_last_locations_captured_at")
		},
		Rollback: func(db *gorm.DB) error {
			return db.Migrator().DropIndex(&v1LastLocation{}, "idx_last_locations_captured_at")
		},
	}
}

type v1LastLocation struct {
	UserID     int       `gorm:"type:int;not null;primaryKey;autoIncrement:false"`
	CapturedAt time.Time `gorm:"precision:6;index:idx_last_locations_captured_at"`
}

func (*v1LastLocation) TableName() string {
	return "last_locations"
}
