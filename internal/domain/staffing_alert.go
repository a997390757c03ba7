package domain

import "time"

type AlertStatus string

// Alert lifecycle: open when the scan records the shortfall, queued once the
// notification is on the message queue, sent once the notifier delivered it.
const (
	AlertStatusOpen   AlertStatus = "open"
	AlertStatusQueued AlertStatus = "queued"
	AlertStatusSent   AlertStatus = "sent"
)

type StaffingAlert struct {
	ID                 int64       `json:"id"`
	Date               time.Time   `json:"date"`
	ShiftTypeID        int64       `json:"shiftTypeID"`
	MissingSupervisors int32       `json:"missingSupervisors"`
	MissingOfficers    int32       `json:"missingOfficers"`
	Status             AlertStatus `json:"status"`
	CreatedAt          time.Time   `json:"createdAt"`
	Version            int32       `json:"-"`
}
