package dto

import (
	"time"

	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/validation"
)

// CTCBreakupRequest splits total compensation
type CTCBreakupRequest struct {
	Base  float64 `json:"base" yaml:"base" validate:"gte=0"`
	Other float64 `json:"other" yaml:"other" validate:"gte=0"`
}

// CutoffsRequest holds per-stage cutoffs
type CutoffsRequest struct {
	PG     GradeRequest `json:"pg" yaml:"pg"`
	UG     GradeRequest `json:"ug" yaml:"ug"`
	Twelth GradeRequest `json:"twelth" yaml:"twelth"`
	Tenth  GradeRequest `json:"tenth" yaml:"tenth"`
}

// CompanyRequest is the body of company create and update
type CompanyRequest struct {
	Name                   string            `json:"name" yaml:"name" validate:"required,min=1,max=200"`
	Status                 string            `json:"status" yaml:"status" validate:"max=50"`
	TypeOfOffer            string            `json:"typeOfOffer" yaml:"typeOfOffer" validate:"max=50"`
	Profile                string            `json:"profile" yaml:"profile" validate:"max=200"`
	ProfileCategory        string            `json:"profileCategory" yaml:"profileCategory" validate:"max=100"`
	InterviewShortlist     int               `json:"interviewShortlist" yaml:"interviewShortlist" validate:"gte=0"`
	SelectedStudentsRollNo []string          `json:"selectedStudentsRollNo" yaml:"selectedStudentsRollNo" validate:"dive,rollno"`
	DateOfOffer            *time.Time        `json:"dateOfOffer,omitempty" yaml:"dateOfOffer,omitempty"`
	Locations              []string          `json:"locations" yaml:"locations" validate:"dive,required"`
	CTC                    float64           `json:"ctc" yaml:"ctc" validate:"gte=0"`
	CTCBreakup             CTCBreakupRequest `json:"ctcBreakup" yaml:"ctcBreakup"`
	Cutoffs                CutoffsRequest    `json:"cutoffs" yaml:"cutoffs"`
	Bond                   string            `json:"bond" yaml:"bond" validate:"max=200"`
}

// Validate runs the field rules and checks that the base component does not
// exceed the total compensation.
func (r *CompanyRequest) Validate() []validation.FieldError {
	errs := validation.Struct(r)
	if r.CTCBreakup.Base > r.CTC {
		errs = append(errs, validation.FieldError{
			Field:   "ctcBreakup.base",
			Message: "ctcBreakup.base must not exceed ctc",
		})
	}
	return errs
}

// ToModel converts the request into a Company without id or timestamps
func (r *CompanyRequest) ToModel() *models.Company {
	return &models.Company{
		Name:                   r.Name,
		Status:                 r.Status,
		TypeOfOffer:            r.TypeOfOffer,
		Profile:                r.Profile,
		ProfileCategory:        r.ProfileCategory,
		InterviewShortlist:     r.InterviewShortlist,
		SelectedStudentsRollNo: r.SelectedStudentsRollNo,
		DateOfOffer:            r.DateOfOffer,
		Locations:              r.Locations,
		CTC:                    r.CTC,
		CTCBreakup:             models.CTCBreakup{Base: r.CTCBreakup.Base, Other: r.CTCBreakup.Other},
		Cutoffs: models.Cutoffs{
			PG:     models.Cutoff{CGPA: r.Cutoffs.PG.CGPA, Percentage: r.Cutoffs.PG.Percentage},
			UG:     models.Cutoff{CGPA: r.Cutoffs.UG.CGPA, Percentage: r.Cutoffs.UG.Percentage},
			Twelth: models.Cutoff{CGPA: r.Cutoffs.Twelth.CGPA, Percentage: r.Cutoffs.Twelth.Percentage},
			Tenth:  models.Cutoff{CGPA: r.Cutoffs.Tenth.CGPA, Percentage: r.Cutoffs.Tenth.Percentage},
		},
		Bond: r.Bond,
	}
}

// CompanyRequestFrom builds an update request prefilled from c
func CompanyRequestFrom(c *models.Company) CompanyRequest {
	return CompanyRequest{
		Name:                   c.Name,
		Status:                 c.Status,
		TypeOfOffer:            c.TypeOfOffer,
		Profile:                c.Profile,
		ProfileCategory:        c.ProfileCategory,
		InterviewShortlist:     c.InterviewShortlist,
		SelectedStudentsRollNo: c.SelectedStudentsRollNo,
		DateOfOffer:            c.DateOfOffer,
		Locations:              c.Locations,
		CTC:                    c.CTC,
		CTCBreakup:             CTCBreakupRequest{Base: c.CTCBreakup.Base, Other: c.CTCBreakup.Other},
		Cutoffs: CutoffsRequest{
			PG:     GradeRequest{CGPA: c.Cutoffs.PG.CGPA, Percentage: c.Cutoffs.PG.Percentage},
			UG:     GradeRequest{CGPA: c.Cutoffs.UG.CGPA, Percentage: c.Cutoffs.UG.Percentage},
			Twelth: GradeRequest{CGPA: c.Cutoffs.Twelth.CGPA, Percentage: c.Cutoffs.Twelth.Percentage},
			Tenth:  GradeRequest{CGPA: c.Cutoffs.Tenth.CGPA, Percentage: c.Cutoffs.Tenth.Percentage},
		},
		Bond: c.Bond,
	}
}
