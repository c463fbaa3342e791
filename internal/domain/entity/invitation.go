package entity

import "time"

// Estados de invitación. EXPIRED no se persiste: se deriva de ExpiresAt al usarla.
const (
	InvitationPending   = "PENDING"
	InvitationAccepted  = "ACCEPTED"
	InvitationCancelled = "CANCELLED"
	InvitationExpired   = "EXPIRED"
)

// Invitation invita a un email a unirse a la empresa con un rol.
type Invitation struct {
	ID         int64
	Email      string
	Role       string
	Token      string
	Status     string
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	Audit
}

// State devuelve el estado efectivo en el instante now.
func (i *Invitation) State(now time.Time) string {
	if i.Status == InvitationPending && now.After(i.ExpiresAt) {
		return InvitationExpired
	}
	return i.Status
}
