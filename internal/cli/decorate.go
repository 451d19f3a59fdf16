package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/helpers"
)

// CompanyRow is a company with the derived fields the listing shows
type CompanyRow struct {
	*models.Company
	SelectedCount int
	CTCBase       float64
	OfferDate     string
	CutoffPG      string
	CutoffUG      string
	Cutoff12      string
	Cutoff10      string
}

// DecorateCompany derives the listing fields of c
func DecorateCompany(c *models.Company) CompanyRow {
	return CompanyRow{
		Company:       c,
		SelectedCount: len(c.SelectedStudentsRollNo),
		CTCBase:       c.CTCBreakup.Base,
		OfferDate:     helpers.FormatOfferDate(c.DateOfOffer),
		CutoffPG:      FormatCutoff(c.Cutoffs.PG),
		CutoffUG:      FormatCutoff(c.Cutoffs.UG),
		Cutoff12:      FormatCutoff(c.Cutoffs.Twelth),
		Cutoff10:      FormatCutoff(c.Cutoffs.Tenth),
	}
}

// FormatCutoff prefers the CGPA form, e.g. "7.5 CGPA", and falls back to the
// percentage, e.g. "60%".
func FormatCutoff(c models.Cutoff) string {
	if c.CGPA != 0 {
		return strconv.FormatFloat(c.CGPA, 'f', -1, 64) + " CGPA"
	}
	return strconv.FormatFloat(c.Percentage, 'f', -1, 64) + "%"
}

func lpa(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// SortByRollNo orders users by roll number
func SortByRollNo(users []*models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].RollNo < users[j].RollNo
	})
}

func companyColumns() []Column[CompanyRow] {
	return []Column[CompanyRow]{
		{Header: "ID", Value: func(r CompanyRow) string { return r.ID.String() }},
		{Header: "NAME", Value: func(r CompanyRow) string { return r.Name }},
		{Header: "STATUS", Value: func(r CompanyRow) string { return r.Status }},
		{Header: "OFFER", Value: func(r CompanyRow) string { return r.TypeOfOffer }},
		{Header: "PROFILE", Value: func(r CompanyRow) string { return r.Profile }},
		{Header: "CATEGORY", Value: func(r CompanyRow) string { return r.ProfileCategory }},
		{Header: "SHORTLISTS", Value: func(r CompanyRow) string { return strconv.Itoa(r.InterviewShortlist) }},
		{Header: "SELECTS", Value: func(r CompanyRow) string { return strconv.Itoa(r.SelectedCount) }},
		{Header: "OFFER DATE", Value: func(r CompanyRow) string { return r.OfferDate }},
		{Header: "LOCATIONS", Value: func(r CompanyRow) string { return strings.Join(r.Locations, ", ") }},
		{Header: "CTC", Value: func(r CompanyRow) string { return lpa(r.CTC) }},
		{Header: "BASE", Value: func(r CompanyRow) string { return lpa(r.CTCBase) }},
		{Header: "PG", Value: func(r CompanyRow) string { return r.CutoffPG }},
		{Header: "UG", Value: func(r CompanyRow) string { return r.CutoffUG }},
		{Header: "12", Value: func(r CompanyRow) string { return r.Cutoff12 }},
		{Header: "10", Value: func(r CompanyRow) string { return r.Cutoff10 }},
		{Header: "BOND", Value: func(r CompanyRow) string { return r.Bond }},
	}
}
