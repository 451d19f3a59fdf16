package models

import (
	"time"

	"github.com/google/uuid"
)

// CTCBreakup splits total compensation into components (in LPA)
type CTCBreakup struct {
	Base  float64 `json:"base" example:"10"`
	Other float64 `json:"other" example:"2.5"`
}

// Cutoff is the minimum grade required at an academic stage. A CGPA cutoff
// takes precedence over a percentage cutoff when both are set.
type Cutoff struct {
	CGPA       float64 `json:"cgpa" example:"7"`
	Percentage float64 `json:"percentage" example:"60"`
}

// Cutoffs holds the per-stage cutoffs of a company
type Cutoffs struct {
	PG     Cutoff `json:"pg"`
	UG     Cutoff `json:"ug"`
	Twelth Cutoff `json:"twelth"`
	Tenth  Cutoff `json:"tenth"`
}

// Company defines the company model based on the 'companies' table
type Company struct {
	ID                     uuid.UUID  `json:"id" db:"id"`
	Name                   string     `json:"name" db:"name" example:"Acme Corp"`
	Status                 string     `json:"status" db:"status" example:"ongoing"`
	TypeOfOffer            string     `json:"typeOfOffer" db:"type_of_offer" example:"FTE"`
	Profile                string     `json:"profile" db:"profile" example:"Software Engineer"`
	ProfileCategory        string     `json:"profileCategory" db:"profile_category" example:"Development"`
	InterviewShortlist     int        `json:"interviewShortlist" db:"interview_shortlist"`
	SelectedStudentsRollNo []string   `json:"selectedStudentsRollNo" db:"selected_students_roll_no"`
	DateOfOffer            *time.Time `json:"dateOfOffer,omitempty" db:"date_of_offer"`
	Locations              []string   `json:"locations" db:"locations"`
	CTC                    float64    `json:"ctc" db:"ctc" example:"12.5"`
	CTCBreakup             CTCBreakup `json:"ctcBreakup" db:"ctc_breakup"`
	Cutoffs                Cutoffs    `json:"cutoffs" db:"cutoffs"`
	Bond                   string     `json:"bond" db:"bond" example:"1 year"`
	CreatedAt              time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time  `json:"updatedAt" db:"updated_at"`
}

// PrimaryLocation is the location copied onto a student's placement
func (c *Company) PrimaryLocation() string {
	if len(c.Locations) == 0 {
		return ""
	}
	return c.Locations[0]
}

// PlacementFor builds the denormalized placement reference for c
func (c *Company) PlacementFor() Placement {
	return Placement{
		CompanyID:   c.ID.String(),
		CompanyName: c.Name,
		CTC:         c.CTC,
		CTCBase:     c.CTCBreakup.Base,
		Location:    c.PrimaryLocation(),
	}
}
