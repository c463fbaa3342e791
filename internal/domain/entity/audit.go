package entity

import "time"

// Deletion marca una fila como eliminada lógicamente (quién y cuándo).
// Una entidad con Deleted == nil está activa; nunca se borra físicamente.
type Deletion struct {
	At time.Time
	By int64
}

// Audit agrupa los campos de tenant y trazabilidad comunes a toda entidad del tenant.
type Audit struct {
	CompanyID     int64
	CreatedBy     int64
	UpdatedBy     int64
	CreatedByName string // expandido desde users
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Deleted       *Deletion
}

// NewAudit inicializa la auditoría de una fila recién creada por actorID en companyID.
func NewAudit(companyID, actorID int64, now time.Time) Audit {
	return Audit{
		CompanyID: companyID,
		CreatedBy: actorID,
		UpdatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive informa si la fila no está eliminada.
func (a *Audit) IsActive() bool { return a.Deleted == nil }

// Touch registra una modificación.
func (a *Audit) Touch(actorID int64, now time.Time) {
	a.UpdatedBy = actorID
	a.UpdatedAt = now
}

// MarkDeleted pasa la fila al estado eliminado.
func (a *Audit) MarkDeleted(actorID int64, now time.Time) {
	a.Deleted = &Deletion{At: now, By: actorID}
	a.Touch(actorID, now)
}

// DeletionFrom reconstruye el estado desde columnas nulas (deleted_at, deleted_by).
func DeletionFrom(at *time.Time, by *int64) *Deletion {
	if at == nil {
		return nil
	}
	d := &Deletion{At: *at}
	if by != nil {
		d.By = *by
	}
	return d
}
