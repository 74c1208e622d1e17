// file: internals/features/school/academics/academic_years/model/academic_year_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AcademicYearModel struct {
	// PK & tenant
	AcademicYearID       uuid.UUID `gorm:"column:academic_year_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"academic_year_id"`
	AcademicYearSchoolID uuid.UUID `gorm:"column:academic_year_school_id;type:uuid;not null;uniqueIndex:uq_academic_years_school_name" json:"academic_year_school_id"`

	// Identitas, contoh: "2025/2026"
	AcademicYearName string `gorm:"column:academic_year_name;type:varchar(32);not null;uniqueIndex:uq_academic_years_school_name" json:"academic_year_name"`

	AcademicYearStartDate time.Time `gorm:"column:academic_year_start_date;type:timestamptz;not null" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"column:academic_year_end_date;type:timestamptz;not null" json:"academic_year_end_date"`
	AcademicYearIsActive  bool      `gorm:"column:academic_year_is_active;not null;default:false" json:"academic_year_is_active"`

	// Timestamps
	AcademicYearCreatedAt time.Time      `gorm:"column:academic_year_created_at;autoCreateTime" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time      `gorm:"column:academic_year_updated_at;autoUpdateTime" json:"academic_year_updated_at"`
	AcademicYearDeletedAt gorm.DeletedAt `gorm:"column:academic_year_deleted_at;index" json:"academic_year_deleted_at,omitempty"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

// Mirror CHECK: end >= start
func (m *AcademicYearModel) BeforeSave(tx *gorm.DB) error {
	if m.AcademicYearEndDate.Before(m.AcademicYearStartDate) {
		return errors.New("academic_year_end_date must be >= academic_year_start_date")
	}
	m.AcademicYearName = strings.TrimSpace(m.AcademicYearName)
	return nil
}
