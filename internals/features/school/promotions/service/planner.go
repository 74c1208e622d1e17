// file: internals/features/school/promotions/service/planner.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromotionPlanner: preview murni-baca. Menjalankan preview dua kali berturut-
// turut harus memberi hasil identik dan nol tulisan ke DB.
type PromotionPlanner interface {
	Preview(schoolID, fromAcademicYearID uuid.UUID, gradeFilter *string) (*PreviewResult, error)
}

type PreviewSection struct {
	ClassSectionID uuid.UUID       `json:"class_section_id"`
	Name           string          `json:"name"`
	Grade          string          `json:"grade"`
	Section        string          `json:"section"`
	Action         PromotionAction `json:"action,omitempty"`
	TargetGrade    string          `json:"target_grade,omitempty"`

	// Error klasifikasi (label grade rusak dsb) — ditampilkan, bukan ditelan
	Error string `json:"error,omitempty"`

	ActiveStudents    int `json:"active_students"`
	InactiveStudents  int `json:"inactive_students"`
	FailedStudents    int `json:"failed_students"`
	SuspendedStudents int `json:"suspended_students"`
}

type PreviewSummary struct {
	TotalPromoted       int `json:"total_promoted"`
	TotalGraduated      int `json:"total_graduated"`
	TotalSkipped        int `json:"total_skipped"`
	TotalInactive       int `json:"total_inactive"`
	TotalFailed         int `json:"total_failed"`
	TotalSuspended      int `json:"total_suspended"`
	UnclassifiedSection int `json:"unclassified_sections"`
}

type PreviewResult struct {
	Sections   []PreviewSection `json:"sections"`
	Summary    PreviewSummary   `json:"summary"`
	SchoolType string           `json:"school_type"`
}

type promotionPlanner struct {
	DB *gorm.DB
}

func NewPromotionPlanner(db *gorm.DB) PromotionPlanner {
	return &promotionPlanner{DB: db}
}

func (p *promotionPlanner) Preview(schoolID, fromAcademicYearID uuid.UUID, gradeFilter *string) (*PreviewResult, error) {
	school, err := loadSchool(p.DB, schoolID)
	if err != nil {
		return nil, err
	}
	cfg, err := loadPromotionConfig(p.DB, schoolID)
	if err != nil {
		return nil, err
	}
	sections, err := loadActiveSections(p.DB, schoolID, fromAcademicYearID, gradeFilter)
	if err != nil {
		return nil, err
	}
	courseSemesters, err := loadCourseSemesters(p.DB, sections)
	if err != nil {
		return nil, err
	}
	tallies, err := loadEnrollmentTallies(p.DB, fromAcademicYearID)
	if err != nil {
		return nil, err
	}

	result := &PreviewResult{
		Sections:   make([]PreviewSection, 0, len(sections)),
		SchoolType: school.SchoolType,
	}
	for i := range sections {
		sec := &sections[i]
		row := PreviewSection{
			ClassSectionID: sec.ClassSectionID,
			Name:           sec.ClassSectionName,
			Grade:          sec.ClassSectionGrade,
			Section:        sec.ClassSectionSection,
		}

		counts := tallies[sec.ClassSectionID]
		row.ActiveStudents = counts["ACTIVE"]
		row.InactiveStudents = counts["INACTIVE"]
		row.FailedStudents = counts["FAILED"]
		row.SuspendedStudents = counts["SUSPENDED"]

		cls, err := ClassifySection(classifyInputFor(sec, school, cfg, courseSemesters))
		if err != nil {
			row.Error = err.Error()
			result.Summary.UnclassifiedSection++
		} else {
			row.Action = cls.Action
			row.TargetGrade = cls.TargetGrade
			switch cls.Action {
			case ActionPromote:
				result.Summary.TotalPromoted += row.ActiveStudents
			case ActionGraduate:
				result.Summary.TotalGraduated += row.ActiveStudents
			case ActionSkip:
				result.Summary.TotalSkipped += row.ActiveStudents
			}
		}

		// Non-ACTIVE tidak pernah disentuh executor, apapun aksinya
		result.Summary.TotalInactive += row.InactiveStudents
		result.Summary.TotalFailed += row.FailedStudents
		result.Summary.TotalSuspended += row.SuspendedStudents

		result.Sections = append(result.Sections, row)
	}
	return result, nil
}
