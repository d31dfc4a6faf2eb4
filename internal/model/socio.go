package model

import (
	"time"

	"github.com/google/uuid"
)

// Socio is a gym member. The register core only reads it: the close snapshot
// reports members whose FechaAlta falls inside the register session, and payment
// detail is enriched with the member's activity.
type Socio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	DNI       string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Actividad string    `gorm:"not null"`
	FechaAlta time.Time `gorm:"not null;index"`
}

func (Socio) TableName() string { return "socios" }
