// file: internals/features/school/students/model/student_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	// PK
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`

	// Tenant
	StudentSchoolID uuid.UUID `gorm:"column:student_school_id;type:uuid;not null;uniqueIndex:uq_students_school_admission" json:"student_school_id"`

	// Nomor induk — unik per sekolah; berganti saat readmisi
	StudentAdmissionNumber string `gorm:"column:student_admission_number;type:varchar(50);not null;uniqueIndex:uq_students_school_admission" json:"student_admission_number"`

	StudentName string `gorm:"column:student_name;type:varchar(150);not null" json:"student_name"`

	// Status hidup siswa; hanya dimutasi oleh executor (GRADUATED,
	// PENDING_READMISSION) dan readmisi (balik ke ACTIVE).
	StudentStatus string `gorm:"column:student_status;type:text;not null;default:ACTIVE;index:idx_students_status" json:"student_status"` // CHECK ('ACTIVE','INACTIVE','GRADUATED','PENDING_READMISSION','SUSPENDED')

	// Timestamps
	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

const (
	StudentStatusActive             = "ACTIVE"
	StudentStatusInactive           = "INACTIVE"
	StudentStatusGraduated          = "GRADUATED"
	StudentStatusPendingReadmission = "PENDING_READMISSION"
	StudentStatusSuspended          = "SUSPENDED"
)

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	m.StudentAdmissionNumber = strings.TrimSpace(m.StudentAdmissionNumber)
	m.StudentName = strings.TrimSpace(m.StudentName)
	return nil
}

// StudentEnrollmentModel: satu siswa maksimal satu enrollment per tahun ajaran.
// Append-only lintas tahun; setelah dibuat hanya kolom status yang boleh berubah.
type StudentEnrollmentModel struct {
	StudentEnrollmentID uuid.UUID `gorm:"column:student_enrollment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_enrollment_id"`

	StudentEnrollmentStudentID      uuid.UUID `gorm:"column:student_enrollment_student_id;type:uuid;not null;uniqueIndex:uq_enrollments_student_year" json:"student_enrollment_student_id"`
	StudentEnrollmentAcademicYearID uuid.UUID `gorm:"column:student_enrollment_academic_year_id;type:uuid;not null;uniqueIndex:uq_enrollments_student_year" json:"student_enrollment_academic_year_id"`
	StudentEnrollmentClassSectionID uuid.UUID `gorm:"column:student_enrollment_class_section_id;type:uuid;not null;index:idx_enrollments_section" json:"student_enrollment_class_section_id"`

	StudentEnrollmentStatus     string `gorm:"column:student_enrollment_status;type:text;not null;default:ACTIVE" json:"student_enrollment_status"` // CHECK ('ACTIVE','INACTIVE','FAILED','SUSPENDED')
	StudentEnrollmentRollNumber *int   `gorm:"column:student_enrollment_roll_number" json:"student_enrollment_roll_number,omitempty"`

	StudentEnrollmentCreatedAt time.Time `gorm:"column:student_enrollment_created_at;autoCreateTime" json:"student_enrollment_created_at"`
	StudentEnrollmentUpdatedAt time.Time `gorm:"column:student_enrollment_updated_at;autoUpdateTime" json:"student_enrollment_updated_at"`
}

func (StudentEnrollmentModel) TableName() string { return "student_enrollments" }

const (
	EnrollmentStatusActive    = "ACTIVE"
	EnrollmentStatusInactive  = "INACTIVE"
	EnrollmentStatusFailed    = "FAILED"
	EnrollmentStatusSuspended = "SUSPENDED"
)
