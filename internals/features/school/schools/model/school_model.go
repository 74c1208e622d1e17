// file: internals/features/school/schools/model/school_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolModel struct {
	// PK
	SchoolID uuid.UUID `gorm:"column:school_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"school_id"`

	// Identitas
	SchoolName string `gorm:"column:school_name;type:varchar(150);not null" json:"school_name"`
	SchoolSlug string `gorm:"column:school_slug;type:varchar(100);not null;uniqueIndex" json:"school_slug"`

	// Jenis institusi menentukan format grade ("Grade N" vs "Semester N")
	// dan sumber terminal grade (lihat promotion config vs course total semesters).
	SchoolType string `gorm:"column:school_type;type:text;not null;default:school" json:"school_type"` // CHECK ('school','high_school','college','degree','diploma','postgraduate')

	// Timestamps
	SchoolCreatedAt time.Time      `gorm:"column:school_created_at;autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt time.Time      `gorm:"column:school_updated_at;autoUpdateTime" json:"school_updated_at"`
	SchoolDeletedAt gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"school_deleted_at,omitempty"`
}

func (SchoolModel) TableName() string { return "schools" }

const (
	SchoolTypeSchool       = "school"
	SchoolTypeHighSchool   = "high_school"
	SchoolTypeCollege      = "college"
	SchoolTypeDegree       = "degree"
	SchoolTypeDiploma      = "diploma"
	SchoolTypePostgraduate = "postgraduate"
)

// IsCourseBased: institusi berbasis course memakai semester; terminal grade
// diturunkan dari course_total_semesters, bukan dari promotion config.
func IsCourseBased(schoolType string) bool {
	switch schoolType {
	case SchoolTypeDegree, SchoolTypeDiploma, SchoolTypePostgraduate:
		return true
	default:
		return false
	}
}
