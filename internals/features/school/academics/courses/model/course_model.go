// file: internals/features/school/academics/courses/model/course_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseModel: program studi untuk institusi berbasis course
// (degree/diploma/postgraduate). Terminal semester = course_total_semesters.
type CourseModel struct {
	CourseID       uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	CourseSchoolID uuid.UUID `gorm:"column:course_school_id;type:uuid;not null;index" json:"course_school_id"`

	CourseName           string `gorm:"column:course_name;type:varchar(150);not null" json:"course_name"`
	CourseTotalSemesters int    `gorm:"column:course_total_semesters;not null;default:0" json:"course_total_semesters"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }

// StreamModel: penjurusan pra-universitas (IPA/IPS dsb)
type StreamModel struct {
	StreamID       uuid.UUID `gorm:"column:stream_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"stream_id"`
	StreamSchoolID uuid.UUID `gorm:"column:stream_school_id;type:uuid;not null;index" json:"stream_school_id"`

	StreamName string `gorm:"column:stream_name;type:varchar(100);not null" json:"stream_name"`

	StreamCreatedAt time.Time      `gorm:"column:stream_created_at;autoCreateTime" json:"stream_created_at"`
	StreamUpdatedAt time.Time      `gorm:"column:stream_updated_at;autoUpdateTime" json:"stream_updated_at"`
	StreamDeletedAt gorm.DeletedAt `gorm:"column:stream_deleted_at;index" json:"stream_deleted_at,omitempty"`
}

func (StreamModel) TableName() string { return "streams" }

// BranchModel: cabang/peminatan di dalam sebuah course
type BranchModel struct {
	BranchID       uuid.UUID `gorm:"column:branch_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"branch_id"`
	BranchSchoolID uuid.UUID `gorm:"column:branch_school_id;type:uuid;not null;index" json:"branch_school_id"`

	BranchCourseID *uuid.UUID `gorm:"column:branch_course_id;type:uuid;index" json:"branch_course_id,omitempty"`
	BranchName     string     `gorm:"column:branch_name;type:varchar(100);not null" json:"branch_name"`

	BranchCreatedAt time.Time      `gorm:"column:branch_created_at;autoCreateTime" json:"branch_created_at"`
	BranchUpdatedAt time.Time      `gorm:"column:branch_updated_at;autoUpdateTime" json:"branch_updated_at"`
	BranchDeletedAt gorm.DeletedAt `gorm:"column:branch_deleted_at;index" json:"branch_deleted_at,omitempty"`
}

func (BranchModel) TableName() string { return "branches" }
