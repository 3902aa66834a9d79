package models

import "time"

// SupportCase is opened as the effect of a thread escalation. It is never created directly.
type SupportCase struct {
	Id        string
	ThreadId  string
	Title     string
	Priority  ThreadPriority
	Status    SupportCaseStatus
	Summary   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SupportCaseStatus string

const (
	SupportCaseOpen          SupportCaseStatus = "open"
	SupportCaseInvestigating SupportCaseStatus = "investigating"
	SupportCaseResolved      SupportCaseStatus = "resolved"
)

func (s SupportCaseStatus) IsOpen() bool {
	return s != SupportCaseResolved
}

type EscalateThreadInput struct {
	Reason   string
	Priority ThreadPriority
}

// Participant is an entry of the workspace directory. Threads only reference participants.
type Participant struct {
	Id    string
	Name  string
	Email string
}
