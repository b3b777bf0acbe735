package models

import (
	"time"

	"otconsole/overtime"
)

// TripleOTDate is a calendar day on which all worked hours pay triple.
type TripleOTDate struct {
	Date        string    `gorm:"primaryKey;size:10" json:"date"`
	Description string    `gorm:"size:200" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TripleOTDateSet turns registry rows into the engine's lookup set.
func TripleOTDateSet(rows []TripleOTDate) overtime.DateSet {
	dates := make([]string, len(rows))
	for i, r := range rows {
		dates[i] = r.Date
	}
	return overtime.NewDateSet(dates...)
}
