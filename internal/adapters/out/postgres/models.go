package postgres

import (
	"farmtrade/internal/adapters/out/postgres/listingrepo"
	"farmtrade/internal/adapters/out/postgres/notificationrepo"
	"farmtrade/internal/adapters/out/postgres/orderrepo"
	"farmtrade/internal/adapters/out/postgres/profilerepo"
	"farmtrade/internal/adapters/out/postgres/sequencerepo"
	"farmtrade/internal/adapters/out/postgres/transactionrepo"
	"farmtrade/internal/adapters/out/postgres/transportrepo"

	"gorm.io/gorm"
)

// Models lists every table the service reads or writes, in dependency order.
func Models() []any {
	return []any{
		&profilerepo.UserDTO{},
		&profilerepo.BuyerProfileDTO{},
		&profilerepo.FarmerProfileDTO{},
		&listingrepo.ListingDTO{},
		&orderrepo.OrderDTO{},
		&transactionrepo.TransactionDTO{},
		&transportrepo.TransportDTO{},
		&sequencerepo.SequenceDTO{},
		&notificationrepo.NotificationDTO{},
	}
}

// Migrate creates or alters the tables returned by Models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
