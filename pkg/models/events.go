package models

// ReviewEvent es el payload publicado en MQTT y en el feed en vivo cada
// vez que una solicitud llega a un estado terminal
type ReviewEvent struct {
	Type         string `json:"type"` // "approved" o "rejected"
	MessageID    string `json:"messageId"`
	ApplicantID  string `json:"applicantId"`
	Username     string `json:"username"`
	ResolvedName string `json:"resolvedName,omitempty"`
	ReviewerID   string `json:"reviewerId"`
	Reason       string `json:"reason,omitempty"`
	Duplicate    bool   `json:"duplicate,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}
