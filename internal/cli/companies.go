package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yigit/placement/internal/app/auth"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/client"
	"github.com/yigit/placement/internal/confirm"
	"gopkg.in/yaml.v3"
)

// readCompanyFile loads a company from a YAML or JSON file and validates it
// locally before it is sent.
func readCompanyFile(path string) (*dto.CompanyRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var req dto.CompanyRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if errs := req.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, fe := range errs {
			msgs[i] = fe.Message
		}
		return nil, errors.New(strings.Join(msgs, "; "))
	}
	return &req, nil
}

func requireCompanyWrite(me *models.User) error {
	if !auth.HasPermission(me.Role, auth.PermCompaniesWrite) {
		return fmt.Errorf("managing companies is not available to the %s role", me.Role.Label())
	}
	return nil
}

func newCompaniesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "List and manage companies",
	}
	cmd.PersistentFlags().BoolVarP(&app.yes, "yes", "y", false, "Skip the confirmation prompt")

	list := &cobra.Command{
		Use:   "list",
		Short: "List companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, me, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			return app.listCompanies(cmd.Context(), c, me)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, me, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			co, err := c.GetCompany(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if done, err := app.emit(co); done {
				return err
			}
			return RenderGrid(app.Out, companyColumns(), []CompanyRow{DecorateCompany(co)}, me.Role)
		},
	}

	var addFile string
	add := &cobra.Command{
		Use:   "add -f <file>",
		Short: "Add a company from a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, me, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := requireCompanyWrite(me); err != nil {
				return err
			}
			req, err := readCompanyFile(addFile)
			if err != nil {
				return err
			}
			co, err := c.CreateCompany(cmd.Context(), req)
			if err != nil {
				return err
			}
			app.toaster().Success(fmt.Sprintf("Company %s added (%s)", co.Name, co.ID))
			return nil
		},
	}
	add.Flags().StringVarP(&addFile, "file", "f", "", "Company definition")
	_ = add.MarkFlagRequired("file")

	var updateFile string
	update := &cobra.Command{
		Use:   "update <id> -f <file>",
		Short: "Replace a company's fields from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, me, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := requireCompanyWrite(me); err != nil {
				return err
			}
			req, err := readCompanyFile(updateFile)
			if err != nil {
				return err
			}
			co, err := c.UpdateCompany(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			app.toaster().Success(fmt.Sprintf("Company %s updated", co.Name))
			return nil
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "Company definition")
	_ = update.MarkFlagRequired("file")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, me, err := app.session(ctx)
			if err != nil {
				return err
			}
			if err := requireCompanyWrite(me); err != nil {
				return err
			}

			req := confirm.Request{Action: confirm.ActionDelete, Target: confirm.Target{ID: args[0], Name: "this company"}}
			if co, err := c.GetCompany(ctx, args[0]); err == nil {
				req.Target.Name = co.Name
			}

			exec := confirm.ExecutorFunc(func(ctx context.Context, req confirm.Request) (string, error) {
				return c.DeleteCompany(ctx, req.Target.ID)
			})
			wf := confirm.New(exec, app.toaster(), func(ctx context.Context) error {
				return app.listCompanies(ctx, c, me)
			})
			return app.runWorkflow(ctx, wf, req)
		},
	}

	cmd.AddCommand(list, show, add, update, del)
	return cmd
}

func (a *App) listCompanies(ctx context.Context, c *client.Client, me *models.User) error {
	companies, err := c.ListCompanies(ctx)
	if err != nil {
		return err
	}
	if done, err := a.emit(companies); done {
		return err
	}

	rows := make([]CompanyRow, len(companies))
	for i, co := range companies {
		rows[i] = DecorateCompany(co)
	}
	return RenderGrid(a.Out, companyColumns(), rows, me.Role)
}
