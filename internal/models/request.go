package models

import "time"

type NeedType string

const (
	NeedFood         NeedType = "food"
	NeedWater        NeedType = "water"
	NeedMuckOut      NeedType = "muck_out"
	NeedDebris       NeedType = "debris"
	NeedMedical      NeedType = "medical"
	NeedWelfareCheck NeedType = "welfare_check"
	NeedOther        NeedType = "other"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type RequestStatus string

const (
	StatusNew             RequestStatus = "new"
	StatusAssigned        RequestStatus = "assigned"
	StatusInProgress      RequestStatus = "in_progress"
	StatusComplete        RequestStatus = "complete"
	StatusDuplicate       RequestStatus = "duplicate"
	StatusUnableToContact RequestStatus = "unable_to_contact"
)

type SourceChannel string

const (
	SourceSelf   SourceChannel = "self"
	SourcePhone  SourceChannel = "phone"
	SourceEmail  SourceChannel = "email"
	SourceImport SourceChannel = "import"
)

// HelpRequest is a resident's request for aid. Status is mutated later by
// dashboard staff; this service only ever creates rows with StatusNew.
type HelpRequest struct {
	ID               string
	ResidentName     string
	Phone            string
	Email            string
	Address          string
	NeedType         NeedType
	Priority         Priority
	Notes            string
	Source           SourceChannel
	Location         *Point // nil when geocoding failed
	FormattedAddress string
	Status           RequestStatus
	CreatedAt        time.Time
}

func ValidNeedType(n NeedType) bool {
	switch n {
	case NeedFood, NeedWater, NeedMuckOut, NeedDebris, NeedMedical, NeedWelfareCheck, NeedOther:
		return true
	}
	return false
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
