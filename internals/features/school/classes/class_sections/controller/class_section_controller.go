// file: internals/features/school/classes/class_sections/controller/class_section_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	csModel "sekolahku_backend/internals/features/school/classes/class_sections/model"
	helper "sekolahku_backend/internals/helpers"
	authHelper "sekolahku_backend/internals/helpers/auth"
)

type ClassSectionController struct {
	DB *gorm.DB
}

func NewClassSectionController(db *gorm.DB) *ClassSectionController {
	return &ClassSectionController{DB: db}
}

// GET /api/a/class-sections?academic_year_id=&grade=
// Tanpa academic_year_id: semua section sekolah.
// Dengan academic_year_id: hanya section yang link aktivasinya aktif di tahun itu.
func (ctl *ClassSectionController) List(c *fiber.Ctx) error {
	schoolID, err := authHelper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 50, 200)

	q := ctl.DB.Model(&csModel.ClassSectionModel{}).
		Where("class_sections.class_section_school_id = ?", schoolID)

	if raw := strings.TrimSpace(c.Query("academic_year_id")); raw != "" {
		yearID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "academic_year_id tidak valid")
		}
		q = q.Joins(`JOIN class_section_academic_years csay
			ON csay.class_section_academic_year_class_section_id = class_sections.class_section_id`).
			Where("csay.class_section_academic_year_academic_year_id = ?", yearID).
			Where("csay.class_section_academic_year_is_active = ?", true)
	}
	if grade := strings.TrimSpace(c.Query("grade")); grade != "" {
		q = q.Where("class_sections.class_section_grade = ?", grade)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung section: "+err.Error())
	}

	var sections []csModel.ClassSectionModel
	if err := q.
		Order("class_sections.class_section_grade, class_sections.class_section_section").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&sections).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca section: "+err.Error())
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar class section", sections, &pagination)
}
