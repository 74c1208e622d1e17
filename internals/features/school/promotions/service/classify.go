// file: internals/features/school/promotions/service/classify.go
package service

import (
	"fmt"
	"strings"
)

// Aksi hasil klasifikasi satu section.
type PromotionAction string

const (
	ActionPromote  PromotionAction = "PROMOTE"
	ActionGraduate PromotionAction = "GRADUATE"
	ActionSkip     PromotionAction = "SKIP"
)

// ClassifyInput: semua fakta yang dibutuhkan untuk memutuskan aksi sebuah
// section. Planner dan executor memakai fungsi yang SAMA supaya preview
// tidak pernah melenceng dari eksekusi.
type ClassifyInput struct {
	Grade      string
	SkipGrades []string

	// Terminal grade non-course (dari promotion config), boleh nil
	LastGrade *string

	// Terminal semester utk section yang menempel ke course, boleh nil
	CourseTotalSemesters *int
}

type Classification struct {
	Action      PromotionAction
	TargetGrade string // terisi hanya untuk PROMOTE
}

// ClassifySection murni, tanpa I/O. Urutan keputusan:
//  1. ordinal section == ordinal terminal → GRADUATE
//  2. grade terdaftar di skip_grades     → SKIP
//  3. sisanya                            → PROMOTE ke next label
//
// Label grade yang tidak bisa diparse TIDAK boleh ditelan diam-diam:
// kembalikan error supaya pemanggil menampilkannya per-section.
func ClassifySection(in ClassifyInput) (Classification, error) {
	ord, ok := GradeOrdinal(in.Grade)
	if !ok {
		return Classification{}, fmt.Errorf("grade label %q tidak mengandung angka yang bisa diparse", in.Grade)
	}

	// Tentukan ordinal terminal: course lebih otoritatif daripada config
	terminal := -1
	if in.CourseTotalSemesters != nil {
		terminal = *in.CourseTotalSemesters
	} else if in.LastGrade != nil && strings.TrimSpace(*in.LastGrade) != "" {
		t, ok := GradeOrdinal(*in.LastGrade)
		if !ok {
			return Classification{}, fmt.Errorf("last grade %q pada konfigurasi tidak valid", *in.LastGrade)
		}
		terminal = t
	}

	if terminal >= 0 && ord == terminal {
		return Classification{Action: ActionGraduate}, nil
	}

	for _, sg := range in.SkipGrades {
		if strings.EqualFold(strings.TrimSpace(sg), strings.TrimSpace(in.Grade)) {
			return Classification{Action: ActionSkip}, nil
		}
	}

	next, ok := NextGradeLabel(in.Grade)
	if !ok {
		return Classification{}, fmt.Errorf("gagal menghitung grade berikutnya dari %q", in.Grade)
	}
	return Classification{Action: ActionPromote, TargetGrade: next}, nil
}
