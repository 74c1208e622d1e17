// file: internals/features/school/promotions/service/executor.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/configs"
	ayModel "sekolahku_backend/internals/features/school/academics/academic_years/model"
	csModel "sekolahku_backend/internals/features/school/classes/class_sections/model"
	promoModel "sekolahku_backend/internals/features/school/promotions/model"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	cache "sekolahku_backend/internals/helpers/cache"
)

// PromotionExecutor: jalur tulis. Desain dua fase:
//   - fase resolve (tanpa transaksi): banyak read + find-or-create section
//     tujuan, semua keputusan dimaterialisasi dulu;
//   - fase commit (SATU transaksi ber-timeout): bulk update/insert saja.
//
// Kalau semuanya dikerjakan dalam satu transaksi, satu query per section/
// enrollment bisa menabrak timeout transaksi DB saat datanya besar. Fase
// dipisah untuk memperpendek jendela locking, bukan untuk paralelisme.
type PromotionExecutor interface {
	Run(ctx context.Context, in RunInput) (*RunResult, error)
}

type RunInput struct {
	SchoolID           uuid.UUID
	FromAcademicYearID uuid.UUID

	ToAcademicYearName      string
	ToAcademicYearStartDate *time.Time
	ToAcademicYearEndDate   *time.Time

	GradeFilter  *string
	ActingUserID uuid.UUID
}

type RunResults struct {
	Promoted            int `json:"promoted"`
	Graduated           int `json:"graduated"`
	Skipped             int `json:"skipped"`
	AutoCreatedSections int `json:"auto_created_sections"`
}

type RunResult struct {
	ToAcademicYear *ayModel.AcademicYearModel `json:"to_academic_year"`
	Results        RunResults                 `json:"results"`
}

// rincian per-section yang masuk kolom JSONB promotion_log_breakdown
type sectionBreakdown struct {
	ClassSectionID uuid.UUID       `json:"class_section_id"`
	Grade          string          `json:"grade"`
	Action         PromotionAction `json:"action"`
	TargetGrade    string          `json:"target_grade,omitempty"`
	Students       int             `json:"students"`
}

type promotionExecutor struct {
	DB       *gorm.DB
	Resolver SectionResolver
}

func NewPromotionExecutor(db *gorm.DB, resolver SectionResolver) PromotionExecutor {
	return &promotionExecutor{DB: db, Resolver: resolver}
}

func (e *promotionExecutor) Run(ctx context.Context, in RunInput) (*RunResult, error) {
	school, err := loadSchool(e.DB, in.SchoolID)
	if err != nil {
		return nil, err
	}
	cfg, err := loadPromotionConfig(e.DB, in.SchoolID)
	if err != nil {
		return nil, err
	}

	// Tahun tujuan dulu: kalau ditolak, BELUM ada satu tulisan pun terjadi
	toYear, err := e.resolveDestinationYear(in)
	if err != nil {
		return nil, err
	}
	if toYear.AcademicYearID == in.FromAcademicYearID {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tahun ajaran tujuan tidak boleh sama dengan tahun asal")
	}

	// ===== Fase resolve (tanpa transaksi) =====
	sections, err := loadActiveSections(e.DB, in.SchoolID, in.FromAcademicYearID, in.GradeFilter)
	if err != nil {
		return nil, err
	}
	courseSemesters, err := loadCourseSemesters(e.DB, sections)
	if err != nil {
		return nil, err
	}
	sectionIDs := make([]uuid.UUID, len(sections))
	for i := range sections {
		sectionIDs[i] = sections[i].ClassSectionID
	}
	activeStudents, err := loadActiveStudentIDs(e.DB, in.FromAcademicYearID, sectionIDs)
	if err != nil {
		return nil, err
	}
	tallies, err := loadEnrollmentTallies(e.DB, in.FromAcademicYearID)
	if err != nil {
		return nil, err
	}

	var (
		graduateIDs    []uuid.UUID
		skipIDs        []uuid.UUID
		newEnrollments []studentModel.StudentEnrollmentModel
		targetSections = map[uuid.UUID]bool{} // utk aktivasi link, dedup
		breakdown      = make([]sectionBreakdown, 0, len(sections))
		autoCreated    int
		totalFailed    int
		totalInactive  int
	)

	for i := range sections {
		sec := &sections[i]
		students := activeStudents[sec.ClassSectionID]
		counts := tallies[sec.ClassSectionID]
		totalFailed += counts["FAILED"]
		totalInactive += counts["INACTIVE"]

		cls, err := ClassifySection(classifyInputFor(sec, school, cfg, courseSemesters))
		if err != nil {
			// Ambiguitas klasifikasi menggagalkan seluruh run, bukan ditelan
			return nil, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Section %q tidak bisa diklasifikasi: %v", sec.ClassSectionName, err))
		}

		bd := sectionBreakdown{
			ClassSectionID: sec.ClassSectionID,
			Grade:          sec.ClassSectionGrade,
			Action:         cls.Action,
			TargetGrade:    cls.TargetGrade,
			Students:       len(students),
		}
		breakdown = append(breakdown, bd)

		switch cls.Action {
		case ActionGraduate:
			graduateIDs = append(graduateIDs, students...)
		case ActionSkip:
			skipIDs = append(skipIDs, students...)
		case ActionPromote:
			if len(students) == 0 {
				continue
			}
			target, created, err := e.Resolver.Resolve(e.DB, sec, cls.TargetGrade, in.SchoolID)
			if err != nil {
				return nil, err
			}
			if created {
				autoCreated++
			}
			targetSections[target.ClassSectionID] = true
			for _, sid := range students {
				newEnrollments = append(newEnrollments, studentModel.StudentEnrollmentModel{
					StudentEnrollmentStudentID:      sid,
					StudentEnrollmentClassSectionID: target.ClassSectionID,
					StudentEnrollmentAcademicYearID: toYear.AcademicYearID,
					StudentEnrollmentStatus:         studentModel.EnrollmentStatusActive,
					StudentEnrollmentRollNumber:     nil,
				})
			}
		}
	}

	breakdownJSON, _ := json.Marshal(breakdown)

	// ===== Fase commit (satu transaksi ber-timeout) =====
	var results RunResults
	results.AutoCreatedSections = autoCreated

	txCtx, cancel := context.WithTimeout(ctx, configs.PromotionTxTimeout)
	defer cancel()

	err = e.DB.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		// Transaksi ini bulk, jangan kena statement_timeout default DSN
		timeoutMs := int(configs.PromotionTxTimeout / time.Millisecond)
		if err := tx.Exec(fmt.Sprintf("SET LOCAL statement_timeout = %d", timeoutMs)).Error; err != nil {
			return err
		}

		// Serialisasi run utk (school, from-year) yang sama; lepas otomatis
		// saat commit/rollback
		lockKey := in.SchoolID.String() + ":" + in.FromAcademicYearID.String()
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", lockKey).Error; err != nil {
			return err
		}

		// Set status sama dua kali = no-op, jadi re-run aman
		if len(graduateIDs) > 0 {
			res := tx.Model(&studentModel.StudentModel{}).
				Where("student_id IN ?", graduateIDs).
				Where("student_school_id = ?", in.SchoolID).
				Where("student_status <> ?", studentModel.StudentStatusGraduated).
				Update("student_status", studentModel.StudentStatusGraduated)
			if res.Error != nil {
				return res.Error
			}
			results.Graduated = int(res.RowsAffected)
		}

		if len(skipIDs) > 0 {
			res := tx.Model(&studentModel.StudentModel{}).
				Where("student_id IN ?", skipIDs).
				Where("student_school_id = ?", in.SchoolID).
				Where("student_status <> ?", studentModel.StudentStatusPendingReadmission).
				Update("student_status", studentModel.StudentStatusPendingReadmission)
			if res.Error != nil {
				return res.Error
			}
			results.Skipped = int(res.RowsAffected)
		}

		// Aktifkan semua section tujuan utk tahun tujuan (upsert, idempoten)
		if len(targetSections) > 0 {
			links := make([]csModel.ClassSectionAcademicYearModel, 0, len(targetSections))
			for sid := range targetSections {
				links = append(links, csModel.ClassSectionAcademicYearModel{
					ClassSectionAcademicYearClassSectionID: sid,
					ClassSectionAcademicYearAcademicYearID: toYear.AcademicYearID,
					ClassSectionAcademicYearIsActive:       true,
				})
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "class_section_academic_year_class_section_id"},
					{Name: "class_section_academic_year_academic_year_id"},
				},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"class_section_academic_year_is_active": true,
				}),
			}).Create(&links).Error; err != nil {
				return err
			}
		}

		// Enrollment baru: siswa yang sudah terdaftar di tahun tujuan
		// di-skip (DO NOTHING), bukan menggagalkan run. RowsAffected =
		// jumlah yang BENAR-BENAR baru → re-run menghitung hanya yang baru.
		if len(newEnrollments) > 0 {
			res := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "student_enrollment_student_id"},
					{Name: "student_enrollment_academic_year_id"},
				},
				DoNothing: true,
			}).Create(&newEnrollments)
			if res.Error != nil {
				return res.Error
			}
			results.Promoted = int(res.RowsAffected)
		}

		// Audit log DI DALAM transaksi yang sama: gagal menulis log =
		// seluruh promosi batal (tidak ada "promoted but not logged")
		logRow := promoModel.PromotionLogModel{
			PromotionLogSchoolID:           in.SchoolID,
			PromotionLogFromAcademicYearID: in.FromAcademicYearID,
			PromotionLogToAcademicYearID:   toYear.AcademicYearID,
			PromotionLogTotalPromoted:      results.Promoted,
			PromotionLogTotalGraduated:     results.Graduated,
			PromotionLogTotalSkipped:       results.Skipped,
			PromotionLogTotalFailed:        totalFailed,
			PromotionLogTotalInactive:      totalInactive,
			PromotionLogBreakdown:          datatypes.JSON(breakdownJSON),
			PromotionLogTriggeredByID:      in.ActingUserID,
		}
		return tx.Create(&logRow).Error
	})
	if err != nil {
		// fiber.Error dari dalam tx diteruskan apa adanya
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Promosi gagal dan di-rollback: "+err.Error())
	}

	// Best-effort: gagal bump cache bukan kegagalan promosi
	cache.BumpSchoolVersion(in.SchoolID)

	log.Printf("[PromotionExecutor] school=%s from=%s to=%s promoted=%d graduated=%d skipped=%d autoCreated=%d",
		in.SchoolID, in.FromAcademicYearID, toYear.AcademicYearID,
		results.Promoted, results.Graduated, results.Skipped, results.AutoCreatedSections)

	return &RunResult{ToAcademicYear: toYear, Results: results}, nil
}

// resolveDestinationYear find-or-create tahun tujuan. Tahun baru WAJIB bawa
// tanggal mulai+selesai eksplisit — menebak tanggal itu sumber bug audit.
func (e *promotionExecutor) resolveDestinationYear(in RunInput) (*ayModel.AcademicYearModel, error) {
	var year ayModel.AcademicYearModel
	err := e.DB.
		Where("academic_year_school_id = ?", in.SchoolID).
		Where("academic_year_name = ?", in.ToAcademicYearName).
		First(&year).Error
	if err == nil {
		return &year, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca tahun ajaran tujuan: "+err.Error())
	}

	if in.ToAcademicYearStartDate == nil || in.ToAcademicYearEndDate == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Tahun ajaran %q belum ada — sertakan to_academic_year_start_date dan to_academic_year_end_date", in.ToAcademicYearName))
	}

	year = ayModel.AcademicYearModel{
		AcademicYearSchoolID:  in.SchoolID,
		AcademicYearName:      in.ToAcademicYearName,
		AcademicYearStartDate: *in.ToAcademicYearStartDate,
		AcademicYearEndDate:   *in.ToAcademicYearEndDate,
		AcademicYearIsActive:  false,
	}
	if err := e.DB.Create(&year).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat tahun ajaran tujuan: "+err.Error())
	}
	return &year, nil
}
