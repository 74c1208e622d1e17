// file: internals/features/school/promotions/service/executor_test.go
package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	csModel "sekolahku_backend/internals/features/school/classes/class_sections/model"
)

type stubResolver struct {
	target  *csModel.ClassSectionModel
	created bool
	calls   int
}

func (s *stubResolver) Resolve(tx *gorm.DB, source *csModel.ClassSectionModel, targetGrade string, schoolID uuid.UUID) (*csModel.ClassSectionModel, bool, error) {
	s.calls++
	return s.target, s.created, nil
}

// expectRunReads pasang ekspektasi fase resolve: school + config + tahun
// tujuan + sections + enrollment. Semua test Run mulai dari sini.
func expectRunReads(mock sqlmock.Sqlmock, schoolID, fromYearID, toYearID uuid.UUID, sectionRows *sqlmock.Rows, studentRows, tallyRows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT .* FROM "schools"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"school_id", "school_name", "school_slug", "school_type"}).
			AddRow(schoolID.String(), "SMA Harapan", "sma-harapan", "school"))

	mock.ExpectQuery(`SELECT .* FROM "promotion_configs"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"promotion_config_id", "promotion_config_school_id", "promotion_config_skip_grades", "promotion_config_last_grade"}).
			AddRow(uuid.New().String(), schoolID.String(), `{"Grade 3"}`, "Grade 6"))

	mock.ExpectQuery(`SELECT .* FROM "academic_years"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"academic_year_id", "academic_year_school_id", "academic_year_name"}).
			AddRow(toYearID.String(), schoolID.String(), "2026/2027"))

	mock.ExpectQuery(`SELECT .* FROM "class_sections"`).
		WillReturnRows(sectionRows)

	mock.ExpectQuery(`student_enrollment_student_id\s+AS student_id`).
		WillReturnRows(studentRows)

	mock.ExpectQuery(`GROUP BY`).
		WillReturnRows(tallyRows)
}

func sectionCols() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"class_section_id", "class_section_school_id",
		"class_section_grade", "class_section_section", "class_section_name",
	})
}

func TestExecutorRun_MixedActions(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	fromYearID := uuid.New()
	toYearID := uuid.New()
	sec3, sec5, sec6 := uuid.New(), uuid.New(), uuid.New()
	stuA, stuB, stuC, stuD := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	targetSectionID := uuid.New()

	expectRunReads(mock, schoolID, fromYearID, toYearID,
		sectionCols().
			AddRow(sec3.String(), schoolID.String(), "Grade 3", "A", "Grade 3 A").
			AddRow(sec5.String(), schoolID.String(), "Grade 5", "A", "Grade 5 A").
			AddRow(sec6.String(), schoolID.String(), "Grade 6", "A", "Grade 6 A"),
		sqlmock.NewRows([]string{"class_section_id", "student_id"}).
			AddRow(sec3.String(), stuD.String()).
			AddRow(sec5.String(), stuA.String()).
			AddRow(sec5.String(), stuB.String()).
			AddRow(sec6.String(), stuC.String()),
		sqlmock.NewRows([]string{"class_section_id", "status", "total"}).
			AddRow(sec3.String(), "ACTIVE", 1).
			AddRow(sec5.String(), "ACTIVE", 2).
			AddRow(sec6.String(), "ACTIVE", 1))

	// ===== fase commit =====
	mock.ExpectBegin()
	mock.ExpectExec(`SET LOCAL statement_timeout`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`pg_advisory_xact_lock`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// graduate lalu skip, keduanya update status siswa
	mock.ExpectExec(`UPDATE "students"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "students"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "class_section_academic_years"`).
		WillReturnRows(sqlmock.NewRows([]string{"class_section_academic_year_id"}).
			AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "student_enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"student_enrollment_id"}).
			AddRow(uuid.New().String()).
			AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "promotion_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"promotion_log_id"}).
			AddRow(uuid.New().String()))
	mock.ExpectCommit()

	resolver := &stubResolver{
		target: &csModel.ClassSectionModel{
			ClassSectionID:       targetSectionID,
			ClassSectionSchoolID: schoolID,
			ClassSectionGrade:    "Grade 6",
			ClassSectionSection:  "A",
			ClassSectionName:     "Grade 6 A",
		},
		created: true,
	}
	exec := NewPromotionExecutor(db, resolver)

	result, err := exec.Run(context.Background(), RunInput{
		SchoolID:           schoolID,
		FromAcademicYearID: fromYearID,
		ToAcademicYearName: "2026/2027",
		ActingUserID:       uuid.New(),
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 2, result.Results.Promoted)
	assert.Equal(t, 1, result.Results.Graduated)
	assert.Equal(t, 1, result.Results.Skipped)
	assert.Equal(t, 1, result.Results.AutoCreatedSections)
	assert.Equal(t, toYearID, result.ToAcademicYear.AcademicYearID)
	// hanya section PROMOTE yang minta resolusi target
	assert.Equal(t, 1, resolver.calls)

	require.NoError(t, mock.ExpectationsWereMet())
}

// Run kedua pada data yang sudah dipromosikan: status update tidak mengenai
// baris apa pun, enrollment DO NOTHING tidak mengembalikan baris baru —
// hasilnya nol semua, tapi tetap sukses dan tetap tercatat di log.
func TestExecutorRun_RerunIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	fromYearID := uuid.New()
	toYearID := uuid.New()
	sec5, sec6 := uuid.New(), uuid.New()
	stuA, stuC := uuid.New(), uuid.New()

	expectRunReads(mock, schoolID, fromYearID, toYearID,
		sectionCols().
			AddRow(sec5.String(), schoolID.String(), "Grade 5", "A", "Grade 5 A").
			AddRow(sec6.String(), schoolID.String(), "Grade 6", "A", "Grade 6 A"),
		sqlmock.NewRows([]string{"class_section_id", "student_id"}).
			AddRow(sec5.String(), stuA.String()).
			AddRow(sec6.String(), stuC.String()),
		sqlmock.NewRows([]string{"class_section_id", "status", "total"}).
			AddRow(sec5.String(), "ACTIVE", 1).
			AddRow(sec6.String(), "ACTIVE", 1))

	mock.ExpectBegin()
	mock.ExpectExec(`SET LOCAL statement_timeout`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`pg_advisory_xact_lock`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// graduate: semua sudah GRADUATED → 0 baris
	mock.ExpectExec(`UPDATE "students"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "class_section_academic_years"`).
		WillReturnRows(sqlmock.NewRows([]string{"class_section_academic_year_id"}).
			AddRow(uuid.New().String()))
	// DO NOTHING: konflik semua → tidak ada baris RETURNING
	mock.ExpectQuery(`INSERT INTO "student_enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"student_enrollment_id"}))
	mock.ExpectQuery(`INSERT INTO "promotion_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"promotion_log_id"}).
			AddRow(uuid.New().String()))
	mock.ExpectCommit()

	resolver := &stubResolver{
		target: &csModel.ClassSectionModel{
			ClassSectionID:       uuid.New(),
			ClassSectionSchoolID: schoolID,
			ClassSectionGrade:    "Grade 6",
			ClassSectionSection:  "A",
		},
	}
	exec := NewPromotionExecutor(db, resolver)

	result, err := exec.Run(context.Background(), RunInput{
		SchoolID:           schoolID,
		FromAcademicYearID: fromYearID,
		ToAcademicYearName: "2026/2027",
		ActingUserID:       uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Results.Promoted)
	assert.Equal(t, 0, result.Results.Graduated)
	assert.Equal(t, 0, result.Results.Skipped)

	require.NoError(t, mock.ExpectationsWereMet())
}

// Tahun tujuan baru tanpa tanggal harus ditolak SEBELUM ada tulisan apa pun.
func TestExecutorRun_NewYearWithoutDatesRejected(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "schools"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"school_id", "school_name", "school_slug", "school_type"}).
			AddRow(schoolID.String(), "SMA Harapan", "sma-harapan", "school"))
	mock.ExpectQuery(`SELECT .* FROM "promotion_configs"`).
		WillReturnRows(sqlmock.NewRows([]string{"promotion_config_id"}))
	// tahun tujuan belum ada
	mock.ExpectQuery(`SELECT .* FROM "academic_years"`).
		WillReturnRows(sqlmock.NewRows([]string{"academic_year_id"}))

	exec := NewPromotionExecutor(db, &stubResolver{})
	_, err := exec.Run(context.Background(), RunInput{
		SchoolID:           schoolID,
		FromAcademicYearID: uuid.New(),
		ToAcademicYearName: "2026/2027",
	})
	require.Error(t, err)

	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	// tidak ada INSERT/UPDATE yang dipasang — kalau ada, sqlmock gagal di sini
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorRun_SameFromAndToYearRejected(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	yearID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "schools"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"school_id", "school_name", "school_slug", "school_type"}).
			AddRow(schoolID.String(), "SMA Harapan", "sma-harapan", "school"))
	mock.ExpectQuery(`SELECT .* FROM "promotion_configs"`).
		WillReturnRows(sqlmock.NewRows([]string{"promotion_config_id"}))
	mock.ExpectQuery(`SELECT .* FROM "academic_years"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"academic_year_id", "academic_year_school_id", "academic_year_name"}).
			AddRow(yearID.String(), schoolID.String(), "2025/2026"))

	exec := NewPromotionExecutor(db, &stubResolver{})
	_, err := exec.Run(context.Background(), RunInput{
		SchoolID:           schoolID,
		FromAcademicYearID: yearID,
		ToAcademicYearName: "2025/2026",
	})
	require.Error(t, err)

	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Section dengan label tak terbaca menggagalkan SELURUH run (all-or-nothing),
// sebelum fase commit dimulai.
func TestExecutorRun_UnclassifiableSectionAbortsRun(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	fromYearID := uuid.New()
	toYearID := uuid.New()
	secBad := uuid.New()

	expectRunReads(mock, schoolID, fromYearID, toYearID,
		sectionCols().
			AddRow(secBad.String(), schoolID.String(), "Kindergarten", "A", "Kindergarten A"),
		sqlmock.NewRows([]string{"class_section_id", "student_id"}).
			AddRow(secBad.String(), uuid.New().String()),
		sqlmock.NewRows([]string{"class_section_id", "status", "total"}).
			AddRow(secBad.String(), "ACTIVE", 1))

	exec := NewPromotionExecutor(db, &stubResolver{})
	_, err := exec.Run(context.Background(), RunInput{
		SchoolID:           schoolID,
		FromAcademicYearID: fromYearID,
		ToAcademicYearName: "2026/2027",
	})
	require.Error(t, err)

	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Contains(t, fe.Message, "Kindergarten A")
	require.NoError(t, mock.ExpectationsWereMet())
}
