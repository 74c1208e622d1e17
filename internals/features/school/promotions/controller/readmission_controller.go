// file: internals/features/school/promotions/controller/readmission_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/promotions/dto"
	"sekolahku_backend/internals/features/school/promotions/service"
	helper "sekolahku_backend/internals/helpers"
	authHelper "sekolahku_backend/internals/helpers/auth"
)

type ReadmissionController struct {
	DB      *gorm.DB
	Manager service.ReadmissionManager
}

func NewReadmissionController(db *gorm.DB) *ReadmissionController {
	return &ReadmissionController{
		DB:      db,
		Manager: service.NewReadmissionManager(db),
	}
}

// GET /api/a/promotions/pending-readmission?academic_year_id=
func (ctl *ReadmissionController) ListPending(c *fiber.Ctx) error {
	schoolID, err := authHelper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var yearID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("academic_year_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "academic_year_id tidak valid")
		}
		yearID = &id
	}

	rows, err := ctl.Manager.ListPending(schoolID, yearID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Siswa menunggu readmisi", rows)
}

// POST /api/a/promotions/readmit/:student_id
func (ctl *ReadmissionController) Readmit(c *fiber.Ctx) error {
	schoolID, err := authHelper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("student_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}

	var req dto.ReadmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrorsToMap(err))
	}

	result, err := ctl.Manager.Readmit(c.Context(), service.ReadmitInput{
		SchoolID:           schoolID,
		StudentID:          studentID,
		NewAdmissionNumber: req.NewAdmissionNumber,
		NewAcademicYearID:  req.NewAcademicYearID,
		NewClassSectionID:  req.NewClassSectionID,
		Reason:             req.Reason,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Siswa berhasil di-readmisi", result)
}
