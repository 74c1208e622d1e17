// file: internals/features/school/promotions/service/section_resolver_test.go
package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	csModel "sekolahku_backend/internals/features/school/classes/class_sections/model"
)

func TestSectionResolver_ReturnsExistingSection(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	existingID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "class_sections"`).
		WillReturnRows(sectionCols().
			AddRow(existingID.String(), schoolID.String(), "Grade 6", "A", "Grade 6 A"))

	source := &csModel.ClassSectionModel{
		ClassSectionID:       uuid.New(),
		ClassSectionSchoolID: schoolID,
		ClassSectionGrade:    "Grade 5",
		ClassSectionSection:  "A",
	}

	target, created, err := NewSectionResolver().Resolve(db, source, "Grade 6", schoolID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existingID, target.ClassSectionID)

	require.NoError(t, mock.ExpectationsWereMet())
}

// Afiliasi stream/course/branch section sumber WAJIB terbawa ke section
// tujuan yang dibuat otomatis, dan nama tampilannya menyusun kelimanya:
// course + branch + grade + stream + section.
func TestSectionResolver_AutoCreateCarriesAffiliations(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	streamID := uuid.New()
	courseID := uuid.New()
	branchID := uuid.New()
	newID := uuid.New()

	// pencarian NULL-safe dengan ketiga afiliasi terisi → belum ada target
	mock.ExpectQuery(`SELECT .* FROM "class_sections"`).
		WillReturnRows(sectionCols())

	// buildDisplayName: course → branch → stream
	mock.ExpectQuery(`SELECT .* FROM "courses"`).
		WillReturnRows(sqlmock.NewRows([]string{"course_id", "course_name", "course_total_semesters"}).
			AddRow(courseID.String(), "Teknik Informatika", 8))
	mock.ExpectQuery(`SELECT .* FROM "branches"`).
		WillReturnRows(sqlmock.NewRows([]string{"branch_id", "branch_name"}).
			AddRow(branchID.String(), "Software Engineering"))
	mock.ExpectQuery(`SELECT .* FROM "streams"`).
		WillReturnRows(sqlmock.NewRows([]string{"stream_id", "stream_name"}).
			AddRow(streamID.String(), "Reguler"))

	mock.ExpectQuery(`INSERT INTO "class_sections"`).
		WillReturnRows(sqlmock.NewRows([]string{"class_section_id"}).
			AddRow(newID.String()))

	source := &csModel.ClassSectionModel{
		ClassSectionID:       uuid.New(),
		ClassSectionSchoolID: schoolID,
		ClassSectionGrade:    "Semester 3",
		ClassSectionSection:  "B",
		ClassSectionStreamID: &streamID,
		ClassSectionCourseID: &courseID,
		ClassSectionBranchID: &branchID,
	}

	target, created, err := NewSectionResolver().Resolve(db, source, "Semester 4", schoolID)
	require.NoError(t, err)
	assert.True(t, created)

	// ketiga afiliasi utuh di section baru
	require.NotNil(t, target.ClassSectionStreamID)
	require.NotNil(t, target.ClassSectionCourseID)
	require.NotNil(t, target.ClassSectionBranchID)
	assert.Equal(t, streamID, *target.ClassSectionStreamID)
	assert.Equal(t, courseID, *target.ClassSectionCourseID)
	assert.Equal(t, branchID, *target.ClassSectionBranchID)

	assert.Equal(t, "Teknik Informatika Software Engineering Semester 4 Reguler B",
		target.ClassSectionName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionResolver_AutoCreatesMissingSection(t *testing.T) {
	db, mock := newMockDB(t)

	schoolID := uuid.New()
	newID := uuid.New()

	// belum ada target → buat baru dengan afiliasi identik
	mock.ExpectQuery(`SELECT .* FROM "class_sections"`).
		WillReturnRows(sectionCols())
	mock.ExpectQuery(`INSERT INTO "class_sections"`).
		WillReturnRows(sqlmock.NewRows([]string{"class_section_id"}).
			AddRow(newID.String()))

	source := &csModel.ClassSectionModel{
		ClassSectionID:       uuid.New(),
		ClassSectionSchoolID: schoolID,
		ClassSectionGrade:    "Grade 5",
		ClassSectionSection:  "B",
	}

	target, created, err := NewSectionResolver().Resolve(db, source, "Grade 6", schoolID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, newID, target.ClassSectionID)
	assert.Equal(t, "Grade 6", target.ClassSectionGrade)
	assert.Equal(t, "B", target.ClassSectionSection)
	// nama tampilan tanpa course/branch/stream: grade + section saja
	assert.Equal(t, "Grade 6 B", target.ClassSectionName)

	require.NoError(t, mock.ExpectationsWereMet())
}
