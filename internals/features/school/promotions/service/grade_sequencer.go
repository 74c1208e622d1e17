// file: internals/features/school/promotions/service/grade_sequencer.go
package service

import (
	"strconv"
)

// Grade label selalu mengandung tepat satu angka ("Grade 5", "Semester 3").
// Fungsi di sini murni: tanpa I/O, tanpa side effect. Pemanggil wajib
// memperlakukan ok=false sebagai "section ini tidak bisa dipromosikan",
// bukan sebagai panic/fatal.

// GradeOrdinal ekstrak run angka pertama dari label.
func GradeOrdinal(label string) (int, bool) {
	start, end := firstDigitRun(label)
	if start < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(label[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextGradeLabel ganti angka pertama dengan angka+1, prefix/suffix dan
// spasi dipertahankan persis ("Grade 5" → "Grade 6", "Semester 3" → "Semester 4").
func NextGradeLabel(label string) (string, bool) {
	start, end := firstDigitRun(label)
	if start < 0 {
		return "", false
	}
	n, err := strconv.Atoi(label[start:end])
	if err != nil {
		return "", false
	}
	return label[:start] + strconv.Itoa(n+1) + label[end:], true
}

// firstDigitRun cari [start,end) digit pertama; start=-1 kalau tidak ada
func firstDigitRun(s string) (int, int) {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			return start, i
		}
	}
	if start < 0 {
		return -1, -1
	}
	return start, len(s)
}
