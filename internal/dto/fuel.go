package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
)

// CreateFuelLogRequest is the payload for recording a refuelling stop.
// The backing expense transaction is created alongside the log.
type CreateFuelLogRequest struct {
	Liters        decimal.Decimal `json:"liters" binding:"required"`
	PricePerLiter decimal.Decimal `json:"pricePerLiter" binding:"required"`
	OdometerKm    decimal.Decimal `json:"odometerKm" binding:"required"`
	FullTank      bool            `json:"fullTank"`
	Date          time.Time       `json:"date" binding:"required"`
	Location      string          `json:"location"`
}

// UpdateFuelLogRequest carries the mutable fields of a fuel log.
// Nil fields are left untouched.
type UpdateFuelLogRequest struct {
	Liters        *decimal.Decimal `json:"liters"`
	PricePerLiter *decimal.Decimal `json:"pricePerLiter"`
	OdometerKm    *decimal.Decimal `json:"odometerKm"`
	FullTank      *bool            `json:"fullTank"`
}

// FuelLogResponse is the API representation of a fuel log.
type FuelLogResponse struct {
	FuelLogID     string          `json:"fuelLogID"`
	TransactionID string          `json:"transactionID"`
	Liters        decimal.Decimal `json:"liters"`
	PricePerLiter decimal.Decimal `json:"pricePerLiter"`
	OdometerKm    decimal.Decimal `json:"odometerKm"`
	FullTank      bool            `json:"fullTank"`
	Date          time.Time       `json:"date"`
	Location      string          `json:"location,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToFuelLogResponse converts a domain fuel log.
func ToFuelLogResponse(log domain.FuelLog) FuelLogResponse {
	return FuelLogResponse{
		FuelLogID:     log.FuelLogID,
		TransactionID: log.TransactionID,
		Liters:        log.Liters,
		PricePerLiter: log.PricePerLiter,
		OdometerKm:    log.OdometerKm,
		FullTank:      log.FullTank,
		Date:          log.Date,
		Location:      log.Location,
		CreatedAt:     log.CreatedAt,
		LastUpdatedAt: log.LastUpdatedAt,
	}
}

// FuelFillResponse is one refuelling stop with its derived consumption.
type FuelFillResponse struct {
	Date           time.Time        `json:"date"`
	Location       string           `json:"location,omitempty"`
	Liters         decimal.Decimal `json:"liters"`
	PricePerLiter  decimal.Decimal `json:"pricePerLiter"`
	OdometerKm     decimal.Decimal `json:"odometerKm"`
	DistanceKm     decimal.Decimal `json:"distanceKm"`
	LitersPer100Km decimal.Decimal `json:"litersPer100Km"`
}

// FuelOverviewResponse carries all fills with aggregate consumption stats.
type FuelOverviewResponse struct {
	Fills             []FuelFillResponse `json:"fills"`
	TotalLiters       decimal.Decimal    `json:"totalLiters"`
	TotalCost         decimal.Decimal    `json:"totalCost"`
	AvgPricePerLiter  decimal.Decimal    `json:"avgPricePerLiter"`
	AvgLitersPer100Km decimal.Decimal    `json:"avgLitersPer100Km"`
}

// ToFuelOverviewResponse converts a domain fuel overview.
func ToFuelOverviewResponse(overview domain.FuelOverview) FuelOverviewResponse {
	resp := FuelOverviewResponse{
		Fills:             make([]FuelFillResponse, 0, len(overview.Fills)),
		TotalLiters:       overview.TotalLiters,
		TotalCost:         overview.TotalCost,
		AvgPricePerLiter:  overview.AvgPricePerLiter,
		AvgLitersPer100Km: overview.AvgLitersPer100Km,
	}
	for _, fill := range overview.Fills {
		resp.Fills = append(resp.Fills, FuelFillResponse{
			Date:           fill.Date,
			Location:       fill.Location,
			Liters:         fill.Liters,
			PricePerLiter:  fill.PricePerLiter,
			OdometerKm:     fill.OdometerKm,
			DistanceKm:     fill.DistanceKm,
			LitersPer100Km: fill.LitersPer100Km,
		})
	}
	return resp
}
