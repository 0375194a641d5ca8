package mapping

import (
	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/cashflowhq/cashflow_backend/internal/models"
)

// ToModelFuelLog converts a domain FuelLog to its model
func ToModelFuelLog(d domain.FuelLog) models.FuelLog {
	return models.FuelLog{
		FuelLogID:     d.FuelLogID,
		TransactionID: d.TransactionID,
		Liters:        d.Liters,
		PricePerLiter: d.PricePerLiter,
		OdometerKm:    d.OdometerKm,
		FullTank:      d.FullTank,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFuelLog converts a model FuelLog to its domain type
func ToDomainFuelLog(m models.FuelLog) domain.FuelLog {
	return domain.FuelLog{
		FuelLogID:     m.FuelLogID,
		TransactionID: m.TransactionID,
		Liters:        m.Liters,
		PricePerLiter: m.PricePerLiter,
		OdometerKm:    m.OdometerKm,
		FullTank:      m.FullTank,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		Date:          m.Date,
		Location:      m.Location,
	}
}

// ToDomainFuelLogSlice converts a slice of model FuelLogs
func ToDomainFuelLogSlice(ms []models.FuelLog) []domain.FuelLog {
	ds := make([]domain.FuelLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFuelLog(m)
	}
	return ds
}
