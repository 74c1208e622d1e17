// file: internals/features/school/promotions/service/promotion_queries.go
package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "sekolahku_backend/internals/features/school/academics/courses/model"
	csModel "sekolahku_backend/internals/features/school/classes/class_sections/model"
	promoModel "sekolahku_backend/internals/features/school/promotions/model"
	schoolModel "sekolahku_backend/internals/features/school/schools/model"
)

// Query-query bersama planner & executor. Dua jalur itu harus membaca fakta
// yang identik supaya preview == eksekusi.

func loadSchool(db *gorm.DB, schoolID uuid.UUID) (*schoolModel.SchoolModel, error) {
	var school schoolModel.SchoolModel
	if err := db.Where("school_id = ?", schoolID).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca sekolah: "+err.Error())
	}
	return &school, nil
}

// loadPromotionConfig: nil kalau sekolah belum punya konfigurasi (bukan error).
func loadPromotionConfig(db *gorm.DB, schoolID uuid.UUID) (*promoModel.PromotionConfigModel, error) {
	var cfg promoModel.PromotionConfigModel
	err := db.Where("promotion_config_school_id = ?", schoolID).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca promotion config: "+err.Error())
	}
	return &cfg, nil
}

// loadActiveSections: semua section yang link aktivasinya aktif untuk tahun
// ajaran asal, opsional difilter satu grade.
func loadActiveSections(db *gorm.DB, schoolID, academicYearID uuid.UUID, gradeFilter *string) ([]csModel.ClassSectionModel, error) {
	q := db.Model(&csModel.ClassSectionModel{}).
		Joins("JOIN class_section_academic_years csay ON csay.class_section_academic_year_class_section_id = class_sections.class_section_id").
		Where("csay.class_section_academic_year_academic_year_id = ?", academicYearID).
		Where("csay.class_section_academic_year_is_active = TRUE").
		Where("class_sections.class_section_school_id = ?", schoolID)
	if gradeFilter != nil && *gradeFilter != "" {
		q = q.Where("class_sections.class_section_grade = ?", *gradeFilter)
	}

	var sections []csModel.ClassSectionModel
	if err := q.Order("class_sections.class_section_grade, class_sections.class_section_section").
		Find(&sections).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca class sections: "+err.Error())
	}
	return sections, nil
}

// loadCourseSemesters: map course_id → total semester, hanya utk course yang
// dirujuk sections.
func loadCourseSemesters(db *gorm.DB, sections []csModel.ClassSectionModel) (map[uuid.UUID]int, error) {
	ids := make([]uuid.UUID, 0)
	seen := map[uuid.UUID]bool{}
	for i := range sections {
		if cid := sections[i].ClassSectionCourseID; cid != nil && !seen[*cid] {
			seen[*cid] = true
			ids = append(ids, *cid)
		}
	}
	out := make(map[uuid.UUID]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var courses []courseModel.CourseModel
	if err := db.Where("course_id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca courses: "+err.Error())
	}
	for i := range courses {
		out[courses[i].CourseID] = courses[i].CourseTotalSemesters
	}
	return out, nil
}

// enrollmentTally: jumlah enrollment per (section, status) dalam satu tahun.
type enrollmentTally struct {
	ClassSectionID uuid.UUID
	Status         string
	Total          int
}

func loadEnrollmentTallies(db *gorm.DB, academicYearID uuid.UUID) (map[uuid.UUID]map[string]int, error) {
	var rows []enrollmentTally
	err := db.Raw(`
		SELECT student_enrollment_class_section_id AS class_section_id,
		       student_enrollment_status           AS status,
		       COUNT(*)                            AS total
		FROM student_enrollments
		WHERE student_enrollment_academic_year_id = ?
		GROUP BY 1, 2`, academicYearID).Scan(&rows).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung enrollment: "+err.Error())
	}

	out := make(map[uuid.UUID]map[string]int)
	for _, r := range rows {
		if out[r.ClassSectionID] == nil {
			out[r.ClassSectionID] = make(map[string]int)
		}
		out[r.ClassSectionID][r.Status] = r.Total
	}
	return out, nil
}

// loadActiveStudentIDs: student id ber-status enrollment ACTIVE per section.
func loadActiveStudentIDs(db *gorm.DB, academicYearID uuid.UUID, sectionIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	if len(sectionIDs) == 0 {
		return map[uuid.UUID][]uuid.UUID{}, nil
	}

	var rows []struct {
		ClassSectionID uuid.UUID
		StudentID      uuid.UUID
	}
	err := db.Raw(`
		SELECT student_enrollment_class_section_id AS class_section_id,
		       student_enrollment_student_id       AS student_id
		FROM student_enrollments
		WHERE student_enrollment_academic_year_id = ?
		  AND student_enrollment_status = 'ACTIVE'
		  AND student_enrollment_class_section_id IN ?`, academicYearID, sectionIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca enrollment aktif: "+err.Error())
	}

	out := make(map[uuid.UUID][]uuid.UUID)
	for _, r := range rows {
		out[r.ClassSectionID] = append(out[r.ClassSectionID], r.StudentID)
	}
	return out, nil
}

// classifyInputFor rakit input klasifikasi utk satu section dari fakta yang
// sudah dimuat (tanpa query tambahan).
func classifyInputFor(
	section *csModel.ClassSectionModel,
	school *schoolModel.SchoolModel,
	cfg *promoModel.PromotionConfigModel,
	courseSemesters map[uuid.UUID]int,
) ClassifyInput {
	in := ClassifyInput{Grade: section.ClassSectionGrade}
	if cfg != nil {
		in.SkipGrades = cfg.PromotionConfigSkipGrades
		if !schoolModel.IsCourseBased(school.SchoolType) {
			in.LastGrade = cfg.PromotionConfigLastGrade
		}
	}
	if section.ClassSectionCourseID != nil {
		if total, ok := courseSemesters[*section.ClassSectionCourseID]; ok && total > 0 {
			in.CourseTotalSemesters = &total
		}
	}
	return in
}
