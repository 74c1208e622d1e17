// file: internals/features/school/promotions/service/section_resolver.go
package service

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "sekolahku_backend/internals/features/school/academics/courses/model"
	csModel "sekolahku_backend/internals/features/school/classes/class_sections/model"
)

// SectionResolver cari-atau-buat section tujuan untuk grade target dengan
// afiliasi stream/course/branch yang SAMA dengan section sumber — promosi
// tidak boleh diam-diam menghilangkan afiliasi siswa.
// Interface supaya gampang di-mock.
type SectionResolver interface {
	Resolve(tx *gorm.DB, source *csModel.ClassSectionModel, targetGrade string, schoolID uuid.UUID) (*csModel.ClassSectionModel, bool, error)
}

type sectionResolver struct{}

func NewSectionResolver() SectionResolver {
	return &sectionResolver{}
}

// Resolve idempoten: dipanggil dua kali dengan input sama mengembalikan baris
// yang sama. created=true hanya saat baris baru benar-benar dibuat.
func (r *sectionResolver) Resolve(tx *gorm.DB, source *csModel.ClassSectionModel, targetGrade string, schoolID uuid.UUID) (*csModel.ClassSectionModel, bool, error) {
	q := tx.Model(&csModel.ClassSectionModel{}).
		Where("class_section_school_id = ?", schoolID).
		Where("class_section_grade = ?", targetGrade).
		Where("class_section_section = ?", source.ClassSectionSection)
	q = whereNullable(q, "class_section_stream_id", source.ClassSectionStreamID)
	q = whereNullable(q, "class_section_course_id", source.ClassSectionCourseID)
	q = whereNullable(q, "class_section_branch_id", source.ClassSectionBranchID)

	var existing csModel.ClassSectionModel
	err := q.First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fiber.NewError(fiber.StatusInternalServerError, "Gagal mencari section tujuan: "+err.Error())
	}

	name, err := r.buildDisplayName(tx, source, targetGrade)
	if err != nil {
		return nil, false, err
	}

	created := csModel.ClassSectionModel{
		ClassSectionSchoolID: schoolID,
		ClassSectionGrade:    targetGrade,
		ClassSectionSection:  source.ClassSectionSection,
		ClassSectionStreamID: source.ClassSectionStreamID,
		ClassSectionCourseID: source.ClassSectionCourseID,
		ClassSectionBranchID: source.ClassSectionBranchID,
		ClassSectionName:     name,
	}
	if err := tx.Create(&created).Error; err != nil {
		return nil, false, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat section tujuan: "+err.Error())
	}
	log.Printf("[SectionResolver] auto-create section %q school=%s", name, schoolID)
	return &created, true, nil
}

// buildDisplayName susun nama tampilan: course + branch + grade + stream +
// section, bagian yang tidak ada dilewati.
func (r *sectionResolver) buildDisplayName(tx *gorm.DB, source *csModel.ClassSectionModel, targetGrade string) (string, error) {
	parts := make([]string, 0, 5)

	if source.ClassSectionCourseID != nil {
		var course courseModel.CourseModel
		if err := tx.Where("course_id = ?", *source.ClassSectionCourseID).First(&course).Error; err == nil {
			parts = append(parts, course.CourseName)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca course: "+err.Error())
		}
	}
	if source.ClassSectionBranchID != nil {
		var branch courseModel.BranchModel
		if err := tx.Where("branch_id = ?", *source.ClassSectionBranchID).First(&branch).Error; err == nil {
			parts = append(parts, branch.BranchName)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca branch: "+err.Error())
		}
	}

	parts = append(parts, targetGrade)

	if source.ClassSectionStreamID != nil {
		var stream courseModel.StreamModel
		if err := tx.Where("stream_id = ?", *source.ClassSectionStreamID).First(&stream).Error; err == nil {
			parts = append(parts, stream.StreamName)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca stream: "+err.Error())
		}
	}

	if s := strings.TrimSpace(source.ClassSectionSection); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}

// whereNullable: match kolom nullable dengan NULL-safe equality
func whereNullable(q *gorm.DB, column string, v *uuid.UUID) *gorm.DB {
	if v == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}
