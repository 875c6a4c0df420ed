package patient

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/domain"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

// UseCase registro y consulta de pacientes.
type UseCase struct {
	repo repository.PatientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.PatientRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Register valida los campos obligatorios, genera el patient_id y persiste.
// El error de validación acumula todos los campos ofensores, no solo el primero.
func (uc *UseCase) Register(_ context.Context, in dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	var invalid []string
	if strings.TrimSpace(in.Name) == "" {
		invalid = append(invalid, "name")
	}
	if in.Age == nil || *in.Age < 0 {
		invalid = append(invalid, "age")
	}
	if strings.TrimSpace(in.Gender) == "" {
		invalid = append(invalid, "gender")
	}
	if strings.TrimSpace(in.Contact) == "" {
		invalid = append(invalid, "contact")
	}
	if len(invalid) > 0 {
		return nil, domain.NewValidationError(invalid...)
	}

	p := &entity.Patient{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Age:          *in.Age,
		Gender:       strings.TrimSpace(in.Gender),
		Contact:      strings.TrimSpace(in.Contact),
		Email:        strings.TrimSpace(in.Email),
		Notes:        in.Notes,
		RegisteredAt: time.Now(),
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// List devuelve todos los pacientes registrados.
func (uc *UseCase) List(_ context.Context) ([]dto.PatientResponse, error) {
	patients, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		out = append(out, *toPatientResponse(&patients[i]))
	}
	return out, nil
}

// Get obtiene un paciente por ID.
func (uc *UseCase) Get(_ context.Context, id string) (*dto.PatientResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("patient_id")
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPatientResponse(p), nil
}

func toPatientResponse(p *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		PatientID:    p.ID,
		Name:         p.Name,
		Age:          p.Age,
		Gender:       p.Gender,
		Contact:      p.Contact,
		Email:        p.Email,
		Notes:        p.Notes,
		RegisteredAt: p.RegisteredAt,
	}
}
