package model

import (
	"time"
)

type ScammerStatus string

const (
	StatusActive   ScammerStatus = "active"
	StatusInactive ScammerStatus = "inactive"
)

// Scammer is one report of a scam actor, keyed by the actor's Discord ID
// (always exactly 18 decimal digits). ScamMethod is a free-text label; the
// client decides which labels to offer.
type Scammer struct {
	ID          string        `json:"id"`
	DiscordID   string        `json:"discord_id"`
	DiscordName string        `json:"discord_name"`
	ScamMethod  string        `json:"scam_method"`
	Description string        `json:"description"`
	Status      ScammerStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Statistics struct {
	TotalRecords  int `json:"total_records"`
	ActiveThreats int `json:"active_threats"`
	Verified      int `json:"verified"`
}
