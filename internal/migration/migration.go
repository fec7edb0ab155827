package migration

import (
	"gorm.io/gorm"

	memberdomain "github.com/idiarso/parkingLot-sub000/internal/member/domain"
	notificationdomain "github.com/idiarso/parkingLot-sub000/internal/notification/domain"
	ratedomain "github.com/idiarso/parkingLot-sub000/internal/rate/domain"
	sessiondomain "github.com/idiarso/parkingLot-sub000/internal/session/domain"
	"github.com/idiarso/parkingLot-sub000/internal/settings"
	specialratedomain "github.com/idiarso/parkingLot-sub000/internal/specialrate/domain"
)

// RunMigrations brings the schema up to date. AutoMigrate keeps the small
// schema portable across the postgres production store and the sqlite store
// the test suite runs on.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&settings.Setting{},
		&ratedomain.RateRule{},
		&specialratedomain.SpecialRateRule{},
		&memberdomain.Member{},
		&sessiondomain.ParkingSession{},
		&notificationdomain.Record{},
	)
}
