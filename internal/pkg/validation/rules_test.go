package validation

import (
	"errors"
	"testing"

	"github.com/yigit/gradtracker/internal/pkg/apperrors"
)

type sample struct {
	Year  string `json:"graduation_year" validate:"notblank,year4"`
	Name  string `json:"name" validate:"notblank"`
	Notes string `json:"notes"`
}

func TestIsGraduationYear(t *testing.T) {
	cases := map[string]bool{
		"2023":   true,
		" 1999 ": true,
		"0000":   true,
		"23":     false,
		"20234":  false,
		"20a3":   false,
		"":       false,
		"２０２３":   false,
		"2023\n": true,
	}
	for in, want := range cases {
		if got := IsGraduationYear(in); got != want {
			t.Errorf("IsGraduationYear(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(&sample{Year: "2023", Name: "Li Hua"}); err != nil {
		t.Fatalf("Struct() unexpected error: %v", err)
	}
}

func TestStruct_ReportsFirstFieldByJSONName(t *testing.T) {
	tests := []struct {
		name      string
		in        sample
		wantField string
	}{
		{"missing year", sample{Name: "x"}, "graduation_year"},
		{"blank year", sample{Year: "   ", Name: "x"}, "graduation_year"},
		{"malformed year", sample{Year: "23", Name: "x"}, "graduation_year"},
		{"blank name", sample{Year: "2023", Name: "  \t"}, "name"},
		{"year checked before name", sample{Year: "abcd"}, "graduation_year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.in)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("error %v does not wrap ErrValidationFailed", err)
			}
			fe, ok := apperrors.AsFieldError(err)
			if !ok {
				t.Fatalf("error %T is not a FieldError", err)
			}
			if fe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", fe.Field, tt.wantField)
			}
		})
	}
}
