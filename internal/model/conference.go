package model

import "time"

// Conference is the event a program is being built for.  The program
// builder only reads conferences; their lifecycle is managed by the
// registration side of the platform.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – conference display name.
//  Year      – edition year.
//  StartsOn  – first conference day ("2006-01-02").
//  EndsOn    – last conference day.
//  CreatedAt – row creation timestamp.
type Conference struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	StartsOn  string    `json:"startsOn"`
	EndsOn    string    `json:"endsOn"`
	CreatedAt time.Time `json:"createdAt"`
}
