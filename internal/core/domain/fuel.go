package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelLog enriches an expense transaction with refuelling details.
type FuelLog struct {
	FuelLogID     string          `json:"fuelLogID"`     // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction (Not Null)
	Liters        decimal.Decimal `json:"liters"`
	PricePerLiter decimal.Decimal `json:"pricePerLiter"`
	OdometerKm    decimal.Decimal `json:"odometerKm"`
	FullTank      bool            `json:"fullTank"` // Consumption is only computable between full-tank fills
	AuditFields

	// Joined from the owning transaction for listing and stats.
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
}

// FuelFill is one row of the consumption report: a fill together with the
// distance and consumption computed against the previous full-tank fill.
type FuelFill struct {
	Date           time.Time       `json:"date"`
	Location       string          `json:"location"`
	Liters         decimal.Decimal `json:"liters"`
	PricePerLiter  decimal.Decimal `json:"pricePerLiter"`
	OdometerKm     decimal.Decimal `json:"odometerKm"`
	DistanceKm     decimal.Decimal `json:"distanceKm"`     // Zero for the first fill
	LitersPer100Km decimal.Decimal `json:"litersPer100Km"` // Zero when not computable
}

// FuelOverview aggregates the whole fuel log.
type FuelOverview struct {
	Fills             []FuelFill      `json:"fills"`
	TotalLiters       decimal.Decimal `json:"totalLiters"`
	TotalCost         decimal.Decimal `json:"totalCost"`
	AvgPricePerLiter  decimal.Decimal `json:"avgPricePerLiter"`
	AvgLitersPer100Km decimal.Decimal `json:"avgLitersPer100Km"`
}
