// file: internals/features/school/promotions/dto/promotion_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	promoModel "sekolahku_backend/internals/features/school/promotions/model"
)

/* =======================================================
   REQUEST
   ======================================================= */

type PreviewRequest struct {
	FromAcademicYearID uuid.UUID `json:"from_academic_year_id" validate:"required"`
	GradeFilter        *string   `json:"grade_filter" validate:"omitempty,max=50"`
}

type RunRequest struct {
	FromAcademicYearID uuid.UUID `json:"from_academic_year_id" validate:"required"`

	// Tahun tujuan dicari by name; kalau belum ada, dibuat —
	// dan pembuatan WAJIB menyertakan kedua tanggal.
	ToAcademicYearName      string     `json:"to_academic_year_name" validate:"required,min=4,max=50"`
	ToAcademicYearStartDate *time.Time `json:"to_academic_year_start_date"`
	ToAcademicYearEndDate   *time.Time `json:"to_academic_year_end_date"`

	GradeFilter *string `json:"grade_filter" validate:"omitempty,max=50"`
}

type ReadmitRequest struct {
	NewAdmissionNumber string    `json:"new_admission_number" validate:"required,min=1,max=50"`
	NewAcademicYearID  uuid.UUID `json:"new_academic_year_id" validate:"required"`
	NewClassSectionID  uuid.UUID `json:"new_class_section_id" validate:"required"`
	Reason             *string   `json:"reason" validate:"omitempty,max=500"`
}

type ConfigUpsertRequest struct {
	SkipGrades []string `json:"skip_grades" validate:"omitempty,dive,min=1,max=50"`
	LastGrade  *string  `json:"last_grade" validate:"omitempty,min=1,max=50"`
}

// Normalize merapikan input sebelum dipakai (trim, buang entri kosong).
func (r *ConfigUpsertRequest) Normalize() {
	out := make([]string, 0, len(r.SkipGrades))
	for _, g := range r.SkipGrades {
		g = strings.TrimSpace(g)
		if g != "" {
			out = append(out, g)
		}
	}
	r.SkipGrades = out
	if r.LastGrade != nil {
		lg := strings.TrimSpace(*r.LastGrade)
		if lg == "" {
			r.LastGrade = nil
		} else {
			r.LastGrade = &lg
		}
	}
}

/* =======================================================
   RESPONSE
   ======================================================= */

type PromotionConfigResponse struct {
	PromotionConfigID uuid.UUID `json:"promotion_config_id"`
	SchoolID          uuid.UUID `json:"school_id"`
	SkipGrades        []string  `json:"skip_grades"`
	LastGrade         *string   `json:"last_grade,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromPromotionConfigModel(m *promoModel.PromotionConfigModel) *PromotionConfigResponse {
	if m == nil {
		return nil
	}
	skip := []string(m.PromotionConfigSkipGrades)
	if skip == nil {
		skip = []string{}
	}
	return &PromotionConfigResponse{
		PromotionConfigID: m.PromotionConfigID,
		SchoolID:          m.PromotionConfigSchoolID,
		SkipGrades:        skip,
		LastGrade:         m.PromotionConfigLastGrade,
		CreatedAt:         m.PromotionConfigCreatedAt,
		UpdatedAt:         m.PromotionConfigUpdatedAt,
	}
}

type PromotionLogResponse struct {
	PromotionLogID     uuid.UUID `json:"promotion_log_id"`
	FromAcademicYearID uuid.UUID `json:"from_academic_year_id"`
	ToAcademicYearID   uuid.UUID `json:"to_academic_year_id"`

	TotalPromoted  int `json:"total_promoted"`
	TotalGraduated int `json:"total_graduated"`
	TotalSkipped   int `json:"total_skipped"`
	TotalFailed    int `json:"total_failed"`
	TotalInactive  int `json:"total_inactive"`

	Breakdown interface{} `json:"breakdown,omitempty"`

	TriggeredByID uuid.UUID `json:"triggered_by_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromPromotionLogModel(m *promoModel.PromotionLogModel) *PromotionLogResponse {
	if m == nil {
		return nil
	}
	resp := &PromotionLogResponse{
		PromotionLogID:     m.PromotionLogID,
		FromAcademicYearID: m.PromotionLogFromAcademicYearID,
		ToAcademicYearID:   m.PromotionLogToAcademicYearID,
		TotalPromoted:      m.PromotionLogTotalPromoted,
		TotalGraduated:     m.PromotionLogTotalGraduated,
		TotalSkipped:       m.PromotionLogTotalSkipped,
		TotalFailed:        m.PromotionLogTotalFailed,
		TotalInactive:      m.PromotionLogTotalInactive,
		TriggeredByID:      m.PromotionLogTriggeredByID,
		CreatedAt:          m.PromotionLogCreatedAt,
	}
	if len(m.PromotionLogBreakdown) > 0 {
		resp.Breakdown = m.PromotionLogBreakdown
	}
	return resp
}
