// file: internals/features/school/promotions/service/readmission.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	csModel "sekolahku_backend/internals/features/school/classes/class_sections/model"
	promoModel "sekolahku_backend/internals/features/school/promotions/model"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	cache "sekolahku_backend/internals/helpers/cache"
)

// ReadmissionManager: transisi terminal keluar dari PENDING_READMISSION.
// State machine per siswa:
//
//	ACTIVE → (executor, skip-grade) → PENDING_READMISSION → (readmit) → ACTIVE
//
// Readmit adalah SATU-SATUNYA jalur yang membersihkan PENDING_READMISSION;
// tidak ada timeout otomatis atau readmisi massal.
type ReadmissionManager interface {
	ListPending(schoolID uuid.UUID, academicYearID *uuid.UUID) ([]PendingStudent, error)
	Readmit(ctx context.Context, in ReadmitInput) (*ReadmitResult, error)
}

type PendingStudent struct {
	Student          studentModel.StudentModel             `json:"student"`
	LatestEnrollment *studentModel.StudentEnrollmentModel  `json:"latest_enrollment,omitempty"`
	LatestGrade      string                                `json:"latest_grade,omitempty"`
	LastReadmission  *promoModel.StudentReadmissionModel   `json:"last_readmission,omitempty"`
}

type ReadmitInput struct {
	SchoolID  uuid.UUID
	StudentID uuid.UUID

	NewAdmissionNumber string
	NewAcademicYearID  uuid.UUID
	NewClassSectionID  uuid.UUID
	Reason             *string
}

type ReadmitResult struct {
	NewAdmissionNumber string `json:"new_admission_number"`
	NewGrade           string `json:"new_grade"`
}

type readmissionManager struct {
	DB *gorm.DB
}

func NewReadmissionManager(db *gorm.DB) ReadmissionManager {
	return &readmissionManager{DB: db}
}

func (m *readmissionManager) ListPending(schoolID uuid.UUID, academicYearID *uuid.UUID) ([]PendingStudent, error) {
	var students []studentModel.StudentModel
	if err := m.DB.
		Where("student_school_id = ?", schoolID).
		Where("student_status = ?", studentModel.StudentStatusPendingReadmission).
		Order("student_admission_number").
		Find(&students).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca siswa pending: "+err.Error())
	}
	if len(students) == 0 {
		return []PendingStudent{}, nil
	}

	ids := make([]uuid.UUID, len(students))
	for i := range students {
		ids[i] = students[i].StudentID
	}

	// Enrollment terakhir per siswa (urut paling baru, ambil yang pertama)
	var enrollments []studentModel.StudentEnrollmentModel
	if err := m.DB.
		Where("student_enrollment_student_id IN ?", ids).
		Order("student_enrollment_created_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca enrollment: "+err.Error())
	}
	latestEnrollment := map[uuid.UUID]*studentModel.StudentEnrollmentModel{}
	for i := range enrollments {
		sid := enrollments[i].StudentEnrollmentStudentID
		if _, ok := latestEnrollment[sid]; !ok {
			latestEnrollment[sid] = &enrollments[i]
		}
	}

	// Grade section dari enrollment terakhir
	sectionIDs := make([]uuid.UUID, 0, len(latestEnrollment))
	for _, e := range latestEnrollment {
		sectionIDs = append(sectionIDs, e.StudentEnrollmentClassSectionID)
	}
	sectionGrade := map[uuid.UUID]string{}
	if len(sectionIDs) > 0 {
		var secs []csModel.ClassSectionModel
		if err := m.DB.Where("class_section_id IN ?", sectionIDs).Find(&secs).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca sections: "+err.Error())
		}
		for i := range secs {
			sectionGrade[secs[i].ClassSectionID] = secs[i].ClassSectionGrade
		}
	}

	// Riwayat readmisi terakhir (kalau ada)
	var readmissions []promoModel.StudentReadmissionModel
	if err := m.DB.
		Where("student_readmission_student_id IN ?", ids).
		Order("student_readmission_created_at DESC").
		Find(&readmissions).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca riwayat readmisi: "+err.Error())
	}
	lastReadmission := map[uuid.UUID]*promoModel.StudentReadmissionModel{}
	for i := range readmissions {
		sid := readmissions[i].StudentReadmissionStudentID
		if _, ok := lastReadmission[sid]; !ok {
			lastReadmission[sid] = &readmissions[i]
		}
	}

	out := make([]PendingStudent, 0, len(students))
	for i := range students {
		st := students[i]
		row := PendingStudent{Student: st}
		if e := latestEnrollment[st.StudentID]; e != nil {
			// filter opsional: hanya siswa yang enrollment terakhirnya
			// di tahun ajaran yang diminta
			if academicYearID != nil && e.StudentEnrollmentAcademicYearID != *academicYearID {
				continue
			}
			row.LatestEnrollment = e
			row.LatestGrade = sectionGrade[e.StudentEnrollmentClassSectionID]
		} else if academicYearID != nil {
			continue
		}
		row.LastReadmission = lastReadmission[st.StudentID]
		out = append(out, row)
	}
	return out, nil
}

func (m *readmissionManager) Readmit(ctx context.Context, in ReadmitInput) (*ReadmitResult, error) {
	newAdmission := strings.TrimSpace(in.NewAdmissionNumber)
	if newAdmission == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nomor induk baru wajib diisi")
	}

	// Guard 1: state machine — hanya PENDING_READMISSION yang boleh readmit
	var student studentModel.StudentModel
	if err := m.DB.
		Where("student_id = ?", in.StudentID).
		Where("student_school_id = ?", in.SchoolID).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca siswa: "+err.Error())
	}
	if student.StudentStatus != studentModel.StudentStatusPendingReadmission {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Siswa berstatus %s, bukan PENDING_READMISSION", student.StudentStatus))
	}

	// Guard 2: nomor induk baru harus unik di sekolah
	var dup int64
	if err := m.DB.Model(&studentModel.StudentModel{}).
		Where("student_school_id = ?", in.SchoolID).
		Where("student_admission_number = ?", newAdmission).
		Where("student_id <> ?", in.StudentID).
		Count(&dup).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal cek nomor induk: "+err.Error())
	}
	if dup > 0 {
		return nil, fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Nomor induk %q sudah dipakai siswa lain", newAdmission))
	}

	// Guard 3: section tujuan harus milik sekolah yang sama
	var section csModel.ClassSectionModel
	if err := m.DB.
		Where("class_section_id = ?", in.NewClassSectionID).
		Where("class_section_school_id = ?", in.SchoolID).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Section tujuan tidak ditemukan di sekolah ini")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca section: "+err.Error())
	}

	// Snapshot "sebelum" utk baris audit
	prevAdmission := student.StudentAdmissionNumber
	prevGrade := ""
	var prevYearID, prevSectionID *uuid.UUID
	var lastEnrollment studentModel.StudentEnrollmentModel
	if err := m.DB.
		Where("student_enrollment_student_id = ?", in.StudentID).
		Order("student_enrollment_created_at DESC").
		First(&lastEnrollment).Error; err == nil {
		prevYearID = &lastEnrollment.StudentEnrollmentAcademicYearID
		prevSectionID = &lastEnrollment.StudentEnrollmentClassSectionID
		var prevSection csModel.ClassSectionModel
		if err := m.DB.Where("class_section_id = ?", lastEnrollment.StudentEnrollmentClassSectionID).
			First(&prevSection).Error; err == nil {
			prevGrade = prevSection.ClassSectionGrade
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca enrollment terakhir: "+err.Error())
	}

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Audit dulu, dalam transaksi yang sama dengan mutasi state
		audit := promoModel.StudentReadmissionModel{
			StudentReadmissionSchoolID:                in.SchoolID,
			StudentReadmissionStudentID:               in.StudentID,
			StudentReadmissionPreviousAdmissionNumber: prevAdmission,
			StudentReadmissionPreviousGrade:           prevGrade,
			StudentReadmissionPreviousAcademicYearID:  prevYearID,
			StudentReadmissionPreviousClassSectionID:  prevSectionID,
			StudentReadmissionNewAdmissionNumber:      newAdmission,
			StudentReadmissionNewGrade:                section.ClassSectionGrade,
			StudentReadmissionNewAcademicYearID:       in.NewAcademicYearID,
			StudentReadmissionReason:                  in.Reason,
			StudentReadmissionDate:                    time.Now(),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}

		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_id = ?", in.StudentID).
			Updates(map[string]interface{}{
				"student_admission_number": newAdmission,
				"student_status":           studentModel.StudentStatusActive,
			}).Error; err != nil {
			return err
		}

		// Kalau siswa sudah punya baris enrollment di tahun itu
		// (mis. sisa data lama), timpa section & statusnya
		enrollment := studentModel.StudentEnrollmentModel{
			StudentEnrollmentStudentID:      in.StudentID,
			StudentEnrollmentClassSectionID: in.NewClassSectionID,
			StudentEnrollmentAcademicYearID: in.NewAcademicYearID,
			StudentEnrollmentStatus:         studentModel.EnrollmentStatusActive,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_enrollment_student_id"},
				{Name: "student_enrollment_academic_year_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"student_enrollment_class_section_id": in.NewClassSectionID,
				"student_enrollment_status":           studentModel.EnrollmentStatusActive,
			}),
		}).Create(&enrollment).Error; err != nil {
			return err
		}

		// Aktifkan section tujuan utk tahun barunya kalau belum
		link := csModel.ClassSectionAcademicYearModel{
			ClassSectionAcademicYearClassSectionID: in.NewClassSectionID,
			ClassSectionAcademicYearAcademicYearID: in.NewAcademicYearID,
			ClassSectionAcademicYearIsActive:       true,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "class_section_academic_year_class_section_id"},
				{Name: "class_section_academic_year_academic_year_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"class_section_academic_year_is_active": true,
			}),
		}).Create(&link).Error
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Readmisi gagal dan di-rollback: "+err.Error())
	}

	cache.BumpSchoolVersion(in.SchoolID)

	log.Printf("[Readmission] student=%s %s→%s grade=%s", in.StudentID, prevAdmission, newAdmission, section.ClassSectionGrade)

	return &ReadmitResult{
		NewAdmissionNumber: newAdmission,
		NewGrade:           section.ClassSectionGrade,
	}, nil
}
