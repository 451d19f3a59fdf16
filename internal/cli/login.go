package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/client"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token in the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			p, err := LoadProfile(app.ProfilePath)
			if err != nil {
				return err
			}
			server := app.serverURL(p)

			resp, err := client.New(server, "").Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			p.Server, p.Email, p.Token = server, email, resp.Token
			if err := SaveProfile(app.ProfilePath, p); err != nil {
				return err
			}

			if resp.User != nil {
				app.toaster().Success("Logged in as " + resp.User.Name + " (" + resp.User.Role.Label() + ")")
			} else {
				app.toaster().Success("Logged in as " + email)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, me, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			if done, err := app.emit(me); done {
				return err
			}
			return RenderGrid(app.Out, studentColumns(me, nil), []*models.User{me}, me.Role)
		},
	}
}
