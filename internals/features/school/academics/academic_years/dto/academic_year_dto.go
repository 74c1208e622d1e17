// file: internals/features/school/academics/academic_years/dto/academic_year_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	ayModel "sekolahku_backend/internals/features/school/academics/academic_years/model"
)

type CreateAcademicYearRequest struct {
	Name      string    `json:"name" validate:"required,min=4,max=32"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	IsActive  bool      `json:"is_active"`
}

type AcademicYearResponse struct {
	AcademicYearID uuid.UUID `json:"academic_year_id"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromAcademicYearModel(m *ayModel.AcademicYearModel) *AcademicYearResponse {
	if m == nil {
		return nil
	}
	return &AcademicYearResponse{
		AcademicYearID: m.AcademicYearID,
		Name:           m.AcademicYearName,
		StartDate:      m.AcademicYearStartDate,
		EndDate:        m.AcademicYearEndDate,
		IsActive:       m.AcademicYearIsActive,
		CreatedAt:      m.AcademicYearCreatedAt,
	}
}
