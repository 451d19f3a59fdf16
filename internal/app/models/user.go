package models

import (
	"time"

	"github.com/google/uuid"
)

// Grade is a score at one academic stage. Either field may be zero when the
// institution reports only the other one.
type Grade struct {
	CGPA       float64 `json:"cgpa" db:"cgpa" example:"8.25"`
	Percentage float64 `json:"percentage" db:"percentage" example:"82.5"`
}

// Placement is a denormalized copy of the company a student is placed at.
// CompanyID is "np" when the student is not placed.
type Placement struct {
	CompanyID   string  `json:"companyId" example:"np"`
	CompanyName string  `json:"companyName" example:"Acme Corp"`
	CTC         float64 `json:"ctc" example:"12.5"`
	CTCBase     float64 `json:"ctcBase" example:"10"`
	Location    string  `json:"location" example:"Bengaluru"`
}

// IsPlaced reports whether the placement references a company
func (p Placement) IsPlaced() bool {
	return p.CompanyID != "" && p.CompanyID != NotPlaced
}

// User defines the user model based on the 'users' table
type User struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	Name                string    `json:"name" db:"name" example:"Jane Doe"`
	Email               string    `json:"email" db:"email" example:"jane@college.edu"`
	Password            string    `json:"-" db:"password"`
	RollNo              string    `json:"rollNo" db:"roll_no" example:"MCA21-014"`
	Role                Role      `json:"role" db:"role" example:"student"`
	IsVerified          bool      `json:"isVerified" db:"is_verified"`
	PlacedAt            Placement `json:"placedAt"`
	PG                  Grade     `json:"pg"`
	UG                  Grade     `json:"ug"`
	HSC                 Grade     `json:"hsc"`
	SSC                 Grade     `json:"ssc"`
	TotalGapInAcademics int       `json:"totalGapInAcademics" db:"total_gap_in_academics"`
	Backlogs            int       `json:"backlogs" db:"backlogs"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`
}

// UserProfileUpdate holds the fields a profile update may change. Role,
// verification status and placement have dedicated operations.
type UserProfileUpdate struct {
	Name                string
	Email               string
	RollNo              string
	PG                  Grade
	UG                  Grade
	HSC                 Grade
	SSC                 Grade
	TotalGapInAcademics int
	Backlogs            int
}
