package dto

import "time"

// RegisterPatientRequest body para POST /api/register_patient.
// Age es puntero para distinguir "ausente" de cero.
type RegisterPatientRequest struct {
	Name    string `json:"name"`
	Age     *int   `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
	Email   string `json:"email,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// PatientResponse paciente en respuestas.
type PatientResponse struct {
	PatientID    string    `json:"patient_id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	Contact      string    `json:"contact"`
	Email        string    `json:"email,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}
