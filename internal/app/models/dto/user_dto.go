package dto

import "github.com/yigit/placement/internal/app/models"

// GradeRequest is a score at one academic stage
type GradeRequest struct {
	CGPA       float64 `json:"cgpa" yaml:"cgpa" validate:"gte=0,lte=10"`
	Percentage float64 `json:"percentage" yaml:"percentage" validate:"gte=0,lte=100"`
}

func (g GradeRequest) toModel() models.Grade {
	return models.Grade{CGPA: g.CGPA, Percentage: g.Percentage}
}

// UpdateUserRequest represents a full profile update
type UpdateUserRequest struct {
	Name                string       `json:"name" yaml:"name" validate:"required,min=2,max=100"`
	Email               string       `json:"email" yaml:"email" validate:"required,email"`
	RollNo              string       `json:"rollNo" yaml:"rollNo" validate:"required,rollno"`
	PG                  GradeRequest `json:"pg" yaml:"pg"`
	UG                  GradeRequest `json:"ug" yaml:"ug"`
	HSC                 GradeRequest `json:"hsc" yaml:"hsc"`
	SSC                 GradeRequest `json:"ssc" yaml:"ssc"`
	TotalGapInAcademics int          `json:"totalGapInAcademics" yaml:"totalGapInAcademics" validate:"gte=0"`
	Backlogs            int          `json:"backlogs" yaml:"backlogs" validate:"gte=0"`
}

// ToProfileUpdate converts the request into the repository update shape
func (r *UpdateUserRequest) ToProfileUpdate() models.UserProfileUpdate {
	return models.UserProfileUpdate{
		Name:                r.Name,
		Email:               r.Email,
		RollNo:              r.RollNo,
		PG:                  r.PG.toModel(),
		UG:                  r.UG.toModel(),
		HSC:                 r.HSC.toModel(),
		SSC:                 r.SSC.toModel(),
		TotalGapInAcademics: r.TotalGapInAcademics,
		Backlogs:            r.Backlogs,
	}
}

// VerifyUserRequest toggles verification. IsVerified is left untyped so that
// a non-boolean value is rejected by the policy rather than by the decoder.
type VerifyUserRequest struct {
	IsVerified interface{} `json:"isVerified"`
}

// UpdateRoleRequest assigns a role
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// AssignCompanyRequest places a student at a company, or "np" to clear it
type AssignCompanyRequest struct {
	CompanyID string `json:"companyId" validate:"required"`
}
