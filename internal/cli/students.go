package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yigit/placement/internal/app/auth"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/client"
	"github.com/yigit/placement/internal/confirm"
)

// errReported marks errors that were already shown to the user
var errReported = errors.New("reported")

type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() []error {
	return []error{e.err, errReported}
}

func grade(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// studentColumns lays out the student grid as seen by me. companies, when
// given, is used to flag placements whose company no longer exists.
func studentColumns(me *models.User, companies map[string]*models.Company) []Column[*models.User] {
	companyName := func(u *models.User) string {
		if !u.PlacedAt.IsPlaced() {
			return "Not Placed"
		}
		if companies != nil {
			if _, ok := companies[u.PlacedAt.CompanyID]; !ok {
				return u.PlacedAt.CompanyName + " (removed)"
			}
		}
		return u.PlacedAt.CompanyName
	}

	return []Column[*models.User]{
		{Header: "ID", Value: func(u *models.User) string { return u.ID.String() }},
		{Header: "VERIFIED", Permission: auth.PermUsersVerify, Value: func(u *models.User) string { return yesNo(u.IsVerified) }},
		{Header: "ROLE", Value: func(u *models.User) string {
			if u.ID == me.ID && auth.CanPerform(me.Role, auth.ActionSetRole) {
				return u.Role.Label() + " (you)"
			}
			return u.Role.Label()
		}},
		{Header: "NAME", Value: func(u *models.User) string { return u.Name }},
		{Header: "ROLL NO", Value: func(u *models.User) string { return u.RollNo }},
		{Header: "EMAIL", Value: func(u *models.User) string { return u.Email }},
		{Header: "COMPANY", Value: companyName},
		{Header: "CTC", Value: func(u *models.User) string { return lpa(u.PlacedAt.CTC) }},
		{Header: "BASE", Value: func(u *models.User) string { return lpa(u.PlacedAt.CTCBase) }},
		{Header: "LOCATION", Value: func(u *models.User) string { return u.PlacedAt.Location }},
		{Header: "PG CGPA", Permission: auth.PermUsersAcademics, Value: func(u *models.User) string { return grade(u.PG.CGPA) }},
		{Header: "PG %", Permission: auth.PermUsersAcademics, Value: func(u *models.User) string { return grade(u.PG.Percentage) }},
		{Header: "UG CGPA", Permission: auth.PermUsersAcademics, Value: func(u *models.User) string { return grade(u.UG.CGPA) }},
		{Header: "UG %", Permission: auth.PermUsersAcademics, Value: func(u *models.User) string { return grade(u.UG.Percentage) }},
		{Header: "HSC CGPA", Permission: auth.PermUsersAcademics, Value: func(u *models.User) string { return grade(u.HSC.CGPA) }},
		{Header: "HSC %", Permission: auth.PermUsersAcademics, Value: func(u *models.User) string { return grade(u.HSC.Percentage) }},
		{Header: "SSC CGPA", Permission: auth.PermUsersAcademics, Value: func(u *models.User) string { return grade(u.SSC.CGPA) }},
		{Header: "SSC %", Permission: auth.PermUsersAcademics, Value: func(u *models.User) string { return grade(u.SSC.Percentage) }},
		{Header: "GAP", Permission: auth.PermUsersAcademics, Value: func(u *models.User) string { return strconv.Itoa(u.TotalGapInAcademics) }},
		{Header: "BACKLOGS", Permission: auth.PermUsersAcademics, Value: func(u *models.User) string { return strconv.Itoa(u.Backlogs) }},
	}
}

func newStudentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "students",
		Aliases: []string{"users"},
		Short:   "List and manage students",
	}
	cmd.PersistentFlags().BoolVarP(&app.yes, "yes", "y", false, "Skip the confirmation prompt")

	var role string
	list := &cobra.Command{
		Use:   "list",
		Short: "List users sorted by roll number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, me, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			return app.listStudents(cmd.Context(), c, me, models.Role(role))
		},
	}
	list.Flags().StringVar(&role, "role", "", "Only list users with this role")

	cmd.AddCommand(
		list,
		app.studentMutationCmd("verify <id>", "Mark a student as verified", confirm.ActionVerify, 1),
		app.studentMutationCmd("unverify <id>", "Revoke a student's verification", confirm.ActionUnverify, 1),
		app.studentMutationCmd("delete <id>", "Delete a user", confirm.ActionDelete, 1),
		app.studentMutationCmd("role <id> <student|placementCoordinator|admin>", "Change a user's role", confirm.ActionRole, 2),
		app.studentMutationCmd("place <id> <company-id|np>", "Set a student's placement", confirm.ActionPlace, 2),
	)
	return cmd
}

func (a *App) listStudents(ctx context.Context, c *client.Client, me *models.User, role models.Role) error {
	users, err := c.ListUsers(ctx, role)
	if client.IsNotFound(err) {
		a.toaster().Failure(err.Error())
		return nil
	}
	if err != nil {
		return err
	}
	SortByRollNo(users)

	if done, err := a.emit(users); done {
		return err
	}

	var companies map[string]*models.Company
	if list, err := c.ListCompanies(ctx); err == nil {
		companies = make(map[string]*models.Company, len(list))
		for _, co := range list {
			companies[co.ID.String()] = co
		}
	}
	return RenderGrid(a.Out, studentColumns(me, companies), users, me.Role)
}

// studentExecutor sends a confirmed request to the server
func studentExecutor(c *client.Client) confirm.Executor {
	return confirm.ExecutorFunc(func(ctx context.Context, req confirm.Request) (string, error) {
		switch req.Action {
		case confirm.ActionDelete:
			return c.DeleteUser(ctx, req.Target.ID)
		case confirm.ActionVerify:
			return c.SetVerification(ctx, req.Target.ID, true)
		case confirm.ActionUnverify:
			return c.SetVerification(ctx, req.Target.ID, false)
		case confirm.ActionRole:
			return c.SetRole(ctx, req.Target.ID, req.Role)
		case confirm.ActionPlace:
			return c.AssignCompany(ctx, req.Target.ID, req.CompanyID)
		}
		return "", fmt.Errorf("unsupported action %q", req.Action)
	})
}

func (a *App) studentMutationCmd(use, short string, action confirm.Action, nargs int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, me, err := a.session(ctx)
			if err != nil {
				return err
			}
			if !auth.CanPerform(me.Role, action.PolicyAction()) {
				return fmt.Errorf("%s is not available to the %s role", cmd.Name(), me.Role.Label())
			}

			req := confirm.Request{Action: action, Target: confirm.Target{ID: args[0], Name: args[0]}}
			// The row is looked up for display only; the server validates the id.
			if target, err := c.GetUser(ctx, args[0]); err == nil {
				req.Target = confirm.Target{ID: target.ID.String(), Name: target.Name, IsVerified: target.IsVerified}
			}

			switch action {
			case confirm.ActionRole:
				req.Role = models.Role(args[1])
			case confirm.ActionPlace:
				req.CompanyID = args[1]
				if args[1] != models.NotPlaced {
					if co, err := c.GetCompany(ctx, args[1]); err == nil {
						req.CompanyName = co.Name
					}
				}
			}

			wf := confirm.New(studentExecutor(c), a.toaster(), func(ctx context.Context) error {
				return a.listStudents(ctx, c, me, "")
			})
			return a.runWorkflow(ctx, wf, req)
		},
	}
}

// runWorkflow proposes req, asks for confirmation and executes it
func (a *App) runWorkflow(ctx context.Context, wf *confirm.Workflow, req confirm.Request) error {
	wf.Propose(req)

	ok, err := a.ask(req.Prompt())
	if err != nil {
		wf.Cancel()
		return err
	}
	if !ok {
		wf.Cancel()
		fmt.Fprintln(a.Out, "Cancelled")
		return nil
	}

	if err := wf.Confirm(ctx); err != nil {
		return reportedError{err}
	}
	return nil
}
