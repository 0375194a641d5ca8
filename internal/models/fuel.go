package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelLog is the database row for a refuelling stop.
// Date and Location come from the owning transaction via a join.
type FuelLog struct {
	FuelLogID     string          `db:"fuel_log_id"`    // Primary Key (UUID)
	TransactionID string          `db:"transaction_id"` // FK -> transactions (Not Null, Unique)
	Liters        decimal.Decimal `db:"liters"`
	PricePerLiter decimal.Decimal `db:"price_per_liter"`
	OdometerKm    decimal.Decimal `db:"odometer_km"`
	FullTank      bool            `db:"full_tank"`
	AuditFields

	Date     time.Time `db:"txn_date"`
	Location string    `db:"location"`
}
