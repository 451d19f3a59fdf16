package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type gradeInput struct {
	CGPA float64 `json:"cgpa" validate:"gte=0,lte=10"`
}

type profileInput struct {
	Name   string     `json:"name" validate:"required,min=2"`
	RollNo string     `json:"rollNo" validate:"required,rollno"`
	PG     gradeInput `json:"pg"`
}

func TestStruct(t *testing.T) {
	assert.Nil(t, Struct(profileInput{Name: "Ravi", RollNo: "MCA21-014", PG: gradeInput{CGPA: 8.2}}))

	errs := Struct(profileInput{Name: "R", RollNo: "no spaces!", PG: gradeInput{CGPA: 11}})
	assert.ElementsMatch(t, []FieldError{
		{Field: "name", Message: "name must be at least 2"},
		{Field: "rollNo", Message: "rollNo must be 3-20 letters, digits or dashes"},
		{Field: "pg.cgpa", Message: "pg.cgpa must be less than or equal to 10"},
	}, errs)
}

func TestRollNoPattern(t *testing.T) {
	for _, ok := range []string{"MCA21-001", "abc", "A1B2C3D4E5F6G7H8I9J0"} {
		assert.True(t, CompiledPatterns.RollNo.MatchString(ok), ok)
	}
	for _, bad := range []string{"ab", "MCA 21", "", "A1B2C3D4E5F6G7H8I9J0K"} {
		assert.False(t, CompiledPatterns.RollNo.MatchString(bad), bad)
	}
}
