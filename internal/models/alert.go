package models

import "time"

type AlertType string

const (
	AlertResourceOpened AlertType = "resource_opened"
	AlertResourceClosed AlertType = "resource_closed"
	AlertSafety         AlertType = "safety"
	AlertUpdate         AlertType = "update"
)

type Audience string

const (
	AudienceResidents  Audience = "residents"
	AudienceVolunteers Audience = "volunteers"
	AudienceBoth       Audience = "both"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelBoth  Channel = "both"
)

// Alert is one outbound notice. Rows are append-only: an alert is written
// once before dispatch and never updated, even when dispatch fails entirely.
type Alert struct {
	ID           string
	Type         AlertType
	Title        string
	Message      string
	RadiusKm     float64
	Origin       Point
	Audience     Audience
	Channel      Channel
	DispatchedAt time.Time
}

func ValidAlertType(t AlertType) bool {
	switch t {
	case AlertResourceOpened, AlertResourceClosed, AlertSafety, AlertUpdate:
		return true
	}
	return false
}

func ValidAudience(a Audience) bool {
	return a == AudienceResidents || a == AudienceVolunteers || a == AudienceBoth
}

func ValidChannel(c Channel) bool {
	return c == ChannelEmail || c == ChannelSMS || c == ChannelBoth
}
