package entity

import "time"

// Patient representa un paciente registrado. Inmutable una vez creado;
// esta superficie no expone edición ni borrado.
type Patient struct {
	ID           string
	Name         string
	Age          int
	Gender       string
	Contact      string
	Email        string // opcional
	Notes        string // opcional
	RegisteredAt time.Time
}
