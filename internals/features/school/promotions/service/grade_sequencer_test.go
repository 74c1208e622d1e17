// file: internals/features/school/promotions/service/grade_sequencer_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeOrdinal(t *testing.T) {
	cases := []struct {
		label string
		want  int
		ok    bool
	}{
		{"Grade 5", 5, true},
		{"Grade 12", 12, true},
		{"Semester 3", 3, true},
		{"Kelas 10 IPA", 10, true},
		{"5", 5, true},
		{"Year10", 10, true},
		// angka pertama yang dipakai, bukan yang terakhir
		{"Batch 2 Semester 7", 2, true},
		{"Kindergarten", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := GradeOrdinal(tc.label)
		assert.Equal(t, tc.ok, ok, "label %q", tc.label)
		if tc.ok {
			assert.Equal(t, tc.want, got, "label %q", tc.label)
		}
	}
}

func TestNextGradeLabel(t *testing.T) {
	cases := []struct {
		label string
		want  string
		ok    bool
	}{
		{"Grade 5", "Grade 6", true},
		{"Grade 9", "Grade 10", true},
		{"Semester 3", "Semester 4", true},
		// prefix/suffix dipertahankan persis
		{"Kelas 10 IPA", "Kelas 11 IPA", true},
		{"7B", "8B", true},
		{"Kindergarten", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NextGradeLabel(tc.label)
		assert.Equal(t, tc.ok, ok, "label %q", tc.label)
		assert.Equal(t, tc.want, got, "label %q", tc.label)
	}
}
