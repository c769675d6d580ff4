package entity

import (
	"time"

	"expobook/internal/quota"
)

type Exhibition struct {
	Base
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	Venue           string    `db:"venue"`
	StartDate       time.Time `db:"start_date"`
	DurationDay     int       `db:"duration_day"`
	SmallBoothQuota int       `db:"small_booth_quota"`
	BigBoothQuota   int       `db:"big_booth_quota"`
	PosterPicture   string    `db:"poster_picture"`
}

// EndDate is the last calendar day of the run, inclusive.
func (e *Exhibition) EndDate() time.Time {
	return e.StartDate.AddDate(0, 0, e.DurationDay-1)
}

// QuotaFor returns the quota ceiling for the given booth type.
func (e *Exhibition) QuotaFor(boothType quota.BoothType) int {
	if boothType == quota.BoothBig {
		return e.BigBoothQuota
	}
	return e.SmallBoothQuota
}
