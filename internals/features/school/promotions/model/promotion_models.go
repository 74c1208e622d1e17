// file: internals/features/school/promotions/model/promotion_models.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// PromotionConfigModel: konfigurasi per sekolah.
// - skip_grades: grade yang siswanya TIDAK dipromosikan otomatis, melainkan
//   ditahan sebagai PENDING_READMISSION (mis. gerbang ujian keluar).
// - last_grade: grade terminal; otoritatif untuk institusi non-course.
//   Institusi berbasis course memakai course_total_semesters.
type PromotionConfigModel struct {
	PromotionConfigID       uuid.UUID `gorm:"column:promotion_config_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"promotion_config_id"`
	PromotionConfigSchoolID uuid.UUID `gorm:"column:promotion_config_school_id;type:uuid;not null;uniqueIndex" json:"promotion_config_school_id"`

	PromotionConfigSkipGrades pq.StringArray `gorm:"column:promotion_config_skip_grades;type:text[]" json:"promotion_config_skip_grades"`
	PromotionConfigLastGrade  *string        `gorm:"column:promotion_config_last_grade;type:varchar(50)" json:"promotion_config_last_grade,omitempty"`

	PromotionConfigCreatedAt time.Time `gorm:"column:promotion_config_created_at;autoCreateTime" json:"promotion_config_created_at"`
	PromotionConfigUpdatedAt time.Time `gorm:"column:promotion_config_updated_at;autoUpdateTime" json:"promotion_config_updated_at"`
}

func (PromotionConfigModel) TableName() string { return "promotion_configs" }

// PromotionLogModel: audit write-once, satu baris per run executor.
// Run ganda utk (school, from-year) yang sama diserialisasi via advisory lock
// di executor; re-run yang sah tetap boleh menulis log baru.
type PromotionLogModel struct {
	PromotionLogID       uuid.UUID `gorm:"column:promotion_log_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"promotion_log_id"`
	PromotionLogSchoolID uuid.UUID `gorm:"column:promotion_log_school_id;type:uuid;not null;index:idx_promotion_logs_school" json:"promotion_log_school_id"`

	PromotionLogFromAcademicYearID uuid.UUID `gorm:"column:promotion_log_from_academic_year_id;type:uuid;not null" json:"promotion_log_from_academic_year_id"`
	PromotionLogToAcademicYearID   uuid.UUID `gorm:"column:promotion_log_to_academic_year_id;type:uuid;not null" json:"promotion_log_to_academic_year_id"`

	PromotionLogTotalPromoted  int `gorm:"column:promotion_log_total_promoted;not null;default:0" json:"promotion_log_total_promoted"`
	PromotionLogTotalGraduated int `gorm:"column:promotion_log_total_graduated;not null;default:0" json:"promotion_log_total_graduated"`
	PromotionLogTotalSkipped   int `gorm:"column:promotion_log_total_skipped;not null;default:0" json:"promotion_log_total_skipped"`
	PromotionLogTotalFailed    int `gorm:"column:promotion_log_total_failed;not null;default:0" json:"promotion_log_total_failed"`
	PromotionLogTotalInactive  int `gorm:"column:promotion_log_total_inactive;not null;default:0" json:"promotion_log_total_inactive"`

	// Rincian per-section (JSONB) untuk keperluan audit/inspeksi
	PromotionLogBreakdown datatypes.JSON `gorm:"column:promotion_log_breakdown;type:jsonb" json:"promotion_log_breakdown,omitempty"`

	PromotionLogTriggeredByID uuid.UUID `gorm:"column:promotion_log_triggered_by_id;type:uuid;not null" json:"promotion_log_triggered_by_id"`

	PromotionLogCreatedAt time.Time `gorm:"column:promotion_log_created_at;autoCreateTime;index:idx_promotion_logs_created_at,sort:desc" json:"promotion_log_created_at"`
}

func (PromotionLogModel) TableName() string { return "promotion_logs" }

// StudentReadmissionModel: audit write-once per readmisi siswa.
type StudentReadmissionModel struct {
	StudentReadmissionID        uuid.UUID `gorm:"column:student_readmission_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_readmission_id"`
	StudentReadmissionSchoolID  uuid.UUID `gorm:"column:student_readmission_school_id;type:uuid;not null;index" json:"student_readmission_school_id"`
	StudentReadmissionStudentID uuid.UUID `gorm:"column:student_readmission_student_id;type:uuid;not null;index" json:"student_readmission_student_id"`

	StudentReadmissionPreviousAdmissionNumber string     `gorm:"column:student_readmission_previous_admission_number;type:varchar(50);not null" json:"student_readmission_previous_admission_number"`
	StudentReadmissionPreviousGrade           string     `gorm:"column:student_readmission_previous_grade;type:varchar(50);not null" json:"student_readmission_previous_grade"`
	StudentReadmissionPreviousAcademicYearID  *uuid.UUID `gorm:"column:student_readmission_previous_academic_year_id;type:uuid" json:"student_readmission_previous_academic_year_id,omitempty"`
	StudentReadmissionPreviousClassSectionID  *uuid.UUID `gorm:"column:student_readmission_previous_class_section_id;type:uuid" json:"student_readmission_previous_class_section_id,omitempty"`

	StudentReadmissionNewAdmissionNumber string    `gorm:"column:student_readmission_new_admission_number;type:varchar(50);not null" json:"student_readmission_new_admission_number"`
	StudentReadmissionNewGrade           string    `gorm:"column:student_readmission_new_grade;type:varchar(50);not null" json:"student_readmission_new_grade"`
	StudentReadmissionNewAcademicYearID  uuid.UUID `gorm:"column:student_readmission_new_academic_year_id;type:uuid;not null" json:"student_readmission_new_academic_year_id"`

	StudentReadmissionReason *string `gorm:"column:student_readmission_reason;type:text" json:"student_readmission_reason,omitempty"`

	StudentReadmissionDate      time.Time `gorm:"column:student_readmission_date;type:timestamptz;not null" json:"student_readmission_date"`
	StudentReadmissionCreatedAt time.Time `gorm:"column:student_readmission_created_at;autoCreateTime" json:"student_readmission_created_at"`
}

func (StudentReadmissionModel) TableName() string { return "student_readmissions" }
