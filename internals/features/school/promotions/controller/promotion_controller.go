// file: internals/features/school/promotions/controller/promotion_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/features/school/promotions/dto"
	promoModel "sekolahku_backend/internals/features/school/promotions/model"
	"sekolahku_backend/internals/features/school/promotions/service"
	helper "sekolahku_backend/internals/helpers"
	authHelper "sekolahku_backend/internals/helpers/auth"
	cache "sekolahku_backend/internals/helpers/cache"
)

var validate = validator.New()

type PromotionController struct {
	DB       *gorm.DB
	Planner  service.PromotionPlanner
	Executor service.PromotionExecutor
}

func NewPromotionController(db *gorm.DB) *PromotionController {
	return &PromotionController{
		DB:       db,
		Planner:  service.NewPromotionPlanner(db),
		Executor: service.NewPromotionExecutor(db, service.NewSectionResolver()),
	}
}

func validationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
		return out
	}
	out["body"] = []string{err.Error()}
	return out
}

/* =======================================================
   CONFIG
   ======================================================= */

const configCacheKey = "promotion_config"

// GET /api/a/promotions/config
func (ctl *PromotionController) GetConfig(c *fiber.Ctx) error {
	schoolID, err := authHelper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// cache ber-versi: upsert config / run promosi mem-bump versi sekolah,
	// jadi entry lama otomatis tidak pernah terbaca lagi
	var cached dto.PromotionConfigResponse
	if cache.GetJSON(c.Context(), schoolID, configCacheKey, &cached) {
		return helper.JsonOK(c, "Konfigurasi promosi", &cached)
	}

	var cfg promoModel.PromotionConfigModel
	if err := ctl.DB.Where("promotion_config_school_id = ?", schoolID).
		First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// belum pernah di-set: kembalikan default kosong, bukan 404
			return helper.JsonOK(c, "Konfigurasi promosi (default)", dto.PromotionConfigResponse{
				SchoolID:   schoolID,
				SkipGrades: []string{},
			})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca konfigurasi: "+err.Error())
	}

	resp := dto.FromPromotionConfigModel(&cfg)
	cache.SetJSON(c.Context(), schoolID, configCacheKey, resp, 10*time.Minute)
	return helper.JsonOK(c, "Konfigurasi promosi", resp)
}

// PUT /api/a/promotions/config — upsert per sekolah
func (ctl *PromotionController) UpsertConfig(c *fiber.Ctx) error {
	schoolID, err := authHelper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ConfigUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrorsToMap(err))
	}
	req.Normalize()

	cfg := promoModel.PromotionConfigModel{
		PromotionConfigSchoolID:   schoolID,
		PromotionConfigSkipGrades: pq.StringArray(req.SkipGrades),
		PromotionConfigLastGrade:  req.LastGrade,
	}
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "promotion_config_school_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"promotion_config_skip_grades": cfg.PromotionConfigSkipGrades,
			"promotion_config_last_grade":  cfg.PromotionConfigLastGrade,
		}),
	}).Create(&cfg).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan konfigurasi: "+err.Error())
	}

	cache.BumpSchoolVersion(schoolID)

	// baca ulang supaya response membawa id & timestamps yang benar
	var saved promoModel.PromotionConfigModel
	if err := ctl.DB.Where("promotion_config_school_id = ?", schoolID).
		First(&saved).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca konfigurasi tersimpan: "+err.Error())
	}
	return helper.JsonUpdated(c, "Konfigurasi promosi disimpan", dto.FromPromotionConfigModel(&saved))
}

/* =======================================================
   PREVIEW & RUN
   ======================================================= */

// POST /api/a/promotions/preview — read-only, tanpa mutasi apa pun
func (ctl *PromotionController) Preview(c *fiber.Ctx) error {
	schoolID, err := authHelper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrorsToMap(err))
	}

	result, err := ctl.Planner.Preview(schoolID, req.FromAcademicYearID, req.GradeFilter)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Preview promosi", result)
}

// POST /api/a/promotions/run
func (ctl *PromotionController) Run(c *fiber.Ctx) error {
	schoolID, err := authHelper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.RunRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrorsToMap(err))
	}

	result, err := ctl.Executor.Run(c.Context(), service.RunInput{
		SchoolID:                schoolID,
		FromAcademicYearID:      req.FromAcademicYearID,
		ToAcademicYearName:      req.ToAcademicYearName,
		ToAcademicYearStartDate: req.ToAcademicYearStartDate,
		ToAcademicYearEndDate:   req.ToAcademicYearEndDate,
		GradeFilter:             req.GradeFilter,
		ActingUserID:            userID,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Promosi selesai dijalankan", result)
}

/* =======================================================
   LOGS
   ======================================================= */

// GET /api/a/promotions/logs
func (ctl *PromotionController) GetLogs(c *fiber.Ctx) error {
	schoolID, err := authHelper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.Model(&promoModel.PromotionLogModel{}).
		Where("promotion_log_school_id = ?", schoolID).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung log: "+err.Error())
	}

	var logs []promoModel.PromotionLogModel
	if err := ctl.DB.
		Where("promotion_log_school_id = ?", schoolID).
		Order("promotion_log_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&logs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca log: "+err.Error())
	}

	items := make([]*dto.PromotionLogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, dto.FromPromotionLogModel(&logs[i]))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Riwayat promosi", items, &pagination)
}
