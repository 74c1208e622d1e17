// file: internals/features/school/academics/academic_years/controller/academic_year_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/academics/academic_years/dto"
	ayModel "sekolahku_backend/internals/features/school/academics/academic_years/model"
	helper "sekolahku_backend/internals/helpers"
	authHelper "sekolahku_backend/internals/helpers/auth"
	cache "sekolahku_backend/internals/helpers/cache"
)

var validate = validator.New()

type AcademicYearController struct {
	DB *gorm.DB
}

func NewAcademicYearController(db *gorm.DB) *AcademicYearController {
	return &AcademicYearController{DB: db}
}

// GET /api/a/academic-years
func (ctl *AcademicYearController) List(c *fiber.Ctx) error {
	schoolID, err := authHelper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.Model(&ayModel.AcademicYearModel{}).
		Where("academic_year_school_id = ?", schoolID).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung tahun ajaran: "+err.Error())
	}

	var years []ayModel.AcademicYearModel
	if err := ctl.DB.
		Where("academic_year_school_id = ?", schoolID).
		Order("academic_year_start_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&years).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca tahun ajaran: "+err.Error())
	}

	items := make([]*dto.AcademicYearResponse, 0, len(years))
	for i := range years {
		items = append(items, dto.FromAcademicYearModel(&years[i]))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar tahun ajaran", items, &pagination)
}

// POST /api/a/academic-years
func (ctl *AcademicYearController) Create(c *fiber.Ctx) error {
	schoolID, err := authHelper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateAcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		verrs := map[string][]string{}
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				verrs[fe.Field()] = append(verrs[fe.Field()], fe.Tag())
			}
		}
		return helper.JsonValidationError(c, verrs)
	}
	if req.EndDate.Before(req.StartDate) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal akhir harus >= tanggal mulai")
	}

	year := ayModel.AcademicYearModel{
		AcademicYearSchoolID:  schoolID,
		AcademicYearName:      strings.TrimSpace(req.Name),
		AcademicYearStartDate: req.StartDate,
		AcademicYearEndDate:   req.EndDate,
		AcademicYearIsActive:  req.IsActive,
	}
	if err := ctl.DB.Create(&year).Error; err != nil {
		if strings.Contains(err.Error(), "uq_academic_years_school_name") {
			return helper.JsonError(c, fiber.StatusConflict, "Tahun ajaran dengan nama itu sudah ada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat tahun ajaran: "+err.Error())
	}

	cache.BumpSchoolVersion(schoolID)

	return helper.JsonCreated(c, "Tahun ajaran dibuat", dto.FromAcademicYearModel(&year))
}
