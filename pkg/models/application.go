package models

import "time"

// ApplicationStatus representa el estado de revisión de una solicitud
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// IsTerminal returns true once the application can no longer change state
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Application representa una solicitud de whitelist y su estado de revisión.
// El ID del mensaje de revisión es la clave primaria: el embed es solo
// presentación, nunca se parsea para recuperar estos campos.
type Application struct {
	MessageID    string            `bson:"_id" json:"messageId"`
	ChannelID    string            `bson:"channel_id" json:"channelId"`
	ApplicantID  string            `bson:"applicant_id" json:"applicantId"`
	Username     string            `bson:"username" json:"username"`
	Edition      string            `bson:"edition" json:"edition"`
	PlayedBefore string            `bson:"played_before" json:"playedBefore"`
	Notes        string            `bson:"notes" json:"notes"`
	Status       ApplicationStatus `bson:"status" json:"status"`
	ResolvedName string            `bson:"resolved_name,omitempty" json:"resolvedName,omitempty"`
	ReviewerID   string            `bson:"reviewer_id,omitempty" json:"reviewerId,omitempty"`
	Reason       string            `bson:"reason,omitempty" json:"reason,omitempty"`
	SubmittedAt  time.Time         `bson:"submitted_at" json:"submittedAt"`
	ReviewedAt   time.Time         `bson:"reviewed_at,omitempty" json:"reviewedAt,omitempty"`
}
