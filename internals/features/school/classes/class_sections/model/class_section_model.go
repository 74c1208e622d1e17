// file: internals/features/school/classes/class_sections/model/class_section_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassSectionModel struct {
	// PK
	ClassSectionID uuid.UUID `gorm:"column:class_section_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_section_id"`

	// Tenant
	ClassSectionSchoolID uuid.UUID `gorm:"column:class_section_school_id;type:uuid;not null;index:idx_class_sections_school" json:"class_section_school_id"`

	// Label grade SELALU mengandung tepat satu angka ("Grade 5", "Semester 3")
	ClassSectionGrade   string `gorm:"column:class_section_grade;type:varchar(50);not null;index:idx_class_sections_grade" json:"class_section_grade"`
	ClassSectionSection string `gorm:"column:class_section_section;type:varchar(10);not null" json:"class_section_section"`

	// Afiliasi opsional — WAJIB terbawa saat promosi (lihat section resolver)
	ClassSectionStreamID *uuid.UUID `gorm:"column:class_section_stream_id;type:uuid;index" json:"class_section_stream_id,omitempty"`
	ClassSectionCourseID *uuid.UUID `gorm:"column:class_section_course_id;type:uuid;index" json:"class_section_course_id,omitempty"`
	ClassSectionBranchID *uuid.UUID `gorm:"column:class_section_branch_id;type:uuid;index" json:"class_section_branch_id,omitempty"`

	// Nama tampilan: course + branch + grade + stream + section
	ClassSectionName string `gorm:"column:class_section_name;type:varchar(200);not null" json:"class_section_name"`

	// Timestamps
	ClassSectionCreatedAt time.Time      `gorm:"column:class_section_created_at;autoCreateTime" json:"class_section_created_at"`
	ClassSectionUpdatedAt time.Time      `gorm:"column:class_section_updated_at;autoUpdateTime" json:"class_section_updated_at"`
	ClassSectionDeletedAt gorm.DeletedAt `gorm:"column:class_section_deleted_at;index" json:"class_section_deleted_at,omitempty"`
}

func (ClassSectionModel) TableName() string { return "class_sections" }

func (m *ClassSectionModel) BeforeSave(tx *gorm.DB) error {
	m.ClassSectionGrade = strings.TrimSpace(m.ClassSectionGrade)
	m.ClassSectionSection = strings.TrimSpace(m.ClassSectionSection)
	m.ClassSectionName = strings.TrimSpace(m.ClassSectionName)
	return nil
}

// ClassSectionAcademicYearModel: link aktivasi — section baru "ada" di sebuah
// tahun ajaran kalau ada baris link yang aktif.
type ClassSectionAcademicYearModel struct {
	ClassSectionAcademicYearID uuid.UUID `gorm:"column:class_section_academic_year_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_section_academic_year_id"`

	ClassSectionAcademicYearClassSectionID uuid.UUID `gorm:"column:class_section_academic_year_class_section_id;type:uuid;not null;uniqueIndex:uq_csay_section_year" json:"class_section_academic_year_class_section_id"`
	ClassSectionAcademicYearAcademicYearID uuid.UUID `gorm:"column:class_section_academic_year_academic_year_id;type:uuid;not null;uniqueIndex:uq_csay_section_year" json:"class_section_academic_year_academic_year_id"`

	ClassSectionAcademicYearIsActive bool `gorm:"column:class_section_academic_year_is_active;not null;default:true" json:"class_section_academic_year_is_active"`

	ClassSectionAcademicYearCreatedAt time.Time `gorm:"column:class_section_academic_year_created_at;autoCreateTime" json:"class_section_academic_year_created_at"`
	ClassSectionAcademicYearUpdatedAt time.Time `gorm:"column:class_section_academic_year_updated_at;autoUpdateTime" json:"class_section_academic_year_updated_at"`
}

func (ClassSectionAcademicYearModel) TableName() string { return "class_section_academic_years" }
