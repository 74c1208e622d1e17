// file: internals/features/school/promotions/service/readmission_test.go
package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentCols() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"student_id", "student_school_id",
		"student_admission_number", "student_name", "student_status",
	})
}

func TestReadmit_RejectsNonPendingStudent(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	studentID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "students"`).
		WillReturnRows(studentCols().
			AddRow(studentID.String(), schoolID.String(), "S-001", "Budi", "ACTIVE"))

	mgr := NewReadmissionManager(db)
	_, err := mgr.Readmit(context.Background(), ReadmitInput{
		SchoolID:           schoolID,
		StudentID:          studentID,
		NewAdmissionNumber: "S-900",
		NewAcademicYearID:  uuid.New(),
		NewClassSectionID:  uuid.New(),
	})
	require.Error(t, err)

	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Contains(t, fe.Message, "ACTIVE")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadmit_RejectsDuplicateAdmissionNumber(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	studentID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "students"`).
		WillReturnRows(studentCols().
			AddRow(studentID.String(), schoolID.String(), "S-001", "Budi", "PENDING_READMISSION"))
	// nomor induk baru sudah dipakai siswa lain
	mock.ExpectQuery(`SELECT count\(\*\) FROM "students"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mgr := NewReadmissionManager(db)
	_, err := mgr.Readmit(context.Background(), ReadmitInput{
		SchoolID:           schoolID,
		StudentID:          studentID,
		NewAdmissionNumber: "S-900",
		NewAcademicYearID:  uuid.New(),
		NewClassSectionID:  uuid.New(),
	})
	require.Error(t, err)

	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadmit_RejectsSectionFromOtherSchool(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	studentID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "students"`).
		WillReturnRows(studentCols().
			AddRow(studentID.String(), schoolID.String(), "S-001", "Budi", "PENDING_READMISSION"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "students"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// section ada tapi bukan milik sekolah ini → query ter-scope school
	// tidak menemukan apa-apa
	mock.ExpectQuery(`SELECT .* FROM "class_sections"`).
		WillReturnRows(sectionCols())

	mgr := NewReadmissionManager(db)
	_, err := mgr.Readmit(context.Background(), ReadmitInput{
		SchoolID:           schoolID,
		StudentID:          studentID,
		NewAdmissionNumber: "S-900",
		NewAcademicYearID:  uuid.New(),
		NewClassSectionID:  uuid.New(),
	})
	require.Error(t, err)

	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadmit_HappyPathWritesAuditAndEnrollment(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	studentID := uuid.New()
	newYearID := uuid.New()
	newSectionID := uuid.New()
	prevYearID := uuid.New()
	prevSectionID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "students"`).
		WillReturnRows(studentCols().
			AddRow(studentID.String(), schoolID.String(), "S-001", "Budi", "PENDING_READMISSION"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "students"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .* FROM "class_sections"`).
		WillReturnRows(sectionCols().
			AddRow(newSectionID.String(), schoolID.String(), "Grade 6", "A", "Grade 6 A"))

	// snapshot "sebelum": enrollment terakhir + grade section lamanya
	mock.ExpectQuery(`SELECT .* FROM "student_enrollments"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"student_enrollment_id", "student_enrollment_student_id", "student_enrollment_academic_year_id", "student_enrollment_class_section_id", "student_enrollment_status"}).
			AddRow(uuid.New().String(), studentID.String(), prevYearID.String(), prevSectionID.String(), "ACTIVE"))
	mock.ExpectQuery(`SELECT .* FROM "class_sections"`).
		WillReturnRows(sectionCols().
			AddRow(prevSectionID.String(), schoolID.String(), "Grade 5", "A", "Grade 5 A"))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "student_readmissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"student_readmission_id"}).
			AddRow(uuid.New().String()))
	mock.ExpectExec(`UPDATE "students"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "student_enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"student_enrollment_id"}).
			AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "class_section_academic_years"`).
		WillReturnRows(sqlmock.NewRows([]string{"class_section_academic_year_id"}).
			AddRow(uuid.New().String()))
	mock.ExpectCommit()

	mgr := NewReadmissionManager(db)
	result, err := mgr.Readmit(context.Background(), ReadmitInput{
		SchoolID:           schoolID,
		StudentID:          studentID,
		NewAdmissionNumber: "S-900",
		NewAcademicYearID:  newYearID,
		NewClassSectionID:  newSectionID,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "S-900", result.NewAdmissionNumber)
	assert.Equal(t, "Grade 6", result.NewGrade)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPending_PicksLatestEnrollment(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	studentID := uuid.New()
	newerSecID := uuid.New()
	olderSecID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "students"`).
		WillReturnRows(studentCols().
			AddRow(studentID.String(), schoolID.String(), "S-001", "Budi", "PENDING_READMISSION"))

	// urut DESC dari query: baris pertama = paling baru
	mock.ExpectQuery(`SELECT .* FROM "student_enrollments"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"student_enrollment_id", "student_enrollment_student_id", "student_enrollment_academic_year_id", "student_enrollment_class_section_id", "student_enrollment_status"}).
			AddRow(uuid.New().String(), studentID.String(), uuid.New().String(), newerSecID.String(), "ACTIVE").
			AddRow(uuid.New().String(), studentID.String(), uuid.New().String(), olderSecID.String(), "ACTIVE"))

	mock.ExpectQuery(`SELECT .* FROM "class_sections"`).
		WillReturnRows(sectionCols().
			AddRow(newerSecID.String(), schoolID.String(), "Grade 5", "A", "Grade 5 A"))

	mock.ExpectQuery(`SELECT .* FROM "student_readmissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"student_readmission_id"}))

	mgr := NewReadmissionManager(db)
	rows, err := mgr.ListPending(schoolID, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NotNil(t, rows[0].LatestEnrollment)
	assert.Equal(t, newerSecID, rows[0].LatestEnrollment.StudentEnrollmentClassSectionID)
	assert.Equal(t, "Grade 5", rows[0].LatestGrade)
	assert.Nil(t, rows[0].LastReadmission)

	require.NoError(t, mock.ExpectationsWereMet())
}
