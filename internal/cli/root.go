// Package cli implements the placementctl command line client.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/client"
	"github.com/yigit/placement/internal/pkg/auth"
	"gopkg.in/yaml.v3"
)

// Version is set at build time
var Version = "0.1.0"

const defaultServer = "http://localhost:8080"

// App carries the streams and global flags shared by every command
type App struct {
	Out         io.Writer
	Err         io.Writer
	In          io.Reader
	ProfilePath string

	server string
	output string
	yes    bool

	stdin *bufio.Reader
}

// NewApp returns an App bound to the process streams
func NewApp() *App {
	return &App{
		Out:         os.Stdout,
		Err:         os.Stderr,
		In:          os.Stdin,
		ProfilePath: DefaultProfilePath(),
	}
}

// NewRootCmd builds the command tree for app
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "placementctl",
		Short: "Command line client for the placement cell",
		Long: `placementctl manages students and companies on a placement server.

Log in once with "placementctl login"; the server URL and token are kept in
~/.config/placementctl/config.yaml.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.server, "server", "", "Server URL (default: from profile, else "+defaultServer+")")
	root.PersistentFlags().StringVarP(&app.output, "output", "o", "table", "Output format: table, json, yaml")
	root.PersistentFlags().StringVar(&app.ProfilePath, "profile", app.ProfilePath, "Profile file path")

	root.AddCommand(
		newLoginCmd(app),
		newWhoamiCmd(app),
		newStudentsCmd(app),
		newCompaniesCmd(app),
	)
	return root
}

// Execute runs placementctl with the process arguments
func Execute() error {
	app := NewApp()
	err := NewRootCmd(app).Execute()
	if err != nil && !errors.Is(err, errReported) {
		app.toaster().Failure(err.Error())
	}
	return err
}

func (a *App) serverURL(p *Profile) string {
	switch {
	case a.server != "":
		return a.server
	case p != nil && p.Server != "":
		return p.Server
	}
	return defaultServer
}

// session loads the profile and resolves the logged in user. The token
// subject is decoded without verification; the server is the authority.
func (a *App) session(ctx context.Context) (*client.Client, *models.User, error) {
	p, err := LoadProfile(a.ProfilePath)
	if err != nil {
		return nil, nil, err
	}
	if p.Token == "" {
		return nil, nil, errors.New("not logged in, run: placementctl login")
	}

	id, err := auth.DecodeSubject(p.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("stored token is unreadable, log in again: %w", err)
	}

	c := client.New(a.serverURL(p), p.Token)
	me, err := c.GetUser(ctx, id.String())
	if err != nil {
		return nil, nil, err
	}
	return c, me, nil
}

// emit writes data as json or yaml. It returns false for table output,
// which each command renders itself.
func (a *App) emit(data interface{}) (bool, error) {
	switch a.output {
	case "json":
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return true, enc.Encode(data)
	case "yaml":
		out, err := yaml.Marshal(data)
		if err != nil {
			return true, err
		}
		_, err = a.Out.Write(out)
		return true, err
	case "table", "":
		return false, nil
	}
	return true, fmt.Errorf("unknown output format %q", a.output)
}

// ask prompts for a yes/no answer; --yes answers for the user
func (a *App) ask(question string) (bool, error) {
	if a.yes {
		return true, nil
	}
	if a.stdin == nil {
		a.stdin = bufio.NewReader(a.In)
	}

	fmt.Fprintf(a.Out, "%s [y/N]: ", question)
	line, err := a.stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// toaster prints colored one-line notifications
type toaster struct {
	out io.Writer
	err io.Writer
}

var (
	okFmt   = color.New(color.FgGreen, color.Bold).SprintFunc()
	errFmt  = color.New(color.FgRed, color.Bold).SprintFunc()
	warnFmt = color.New(color.FgYellow, color.Bold).SprintFunc()
)

func (a *App) toaster() toaster {
	return toaster{out: a.Out, err: a.Err}
}

func (t toaster) Success(msg string) {
	fmt.Fprintf(t.out, "%s %s\n", okFmt("✓"), msg)
}

func (t toaster) Failure(msg string) {
	fmt.Fprintf(t.err, "%s %s\n", errFmt("✗"), msg)
}

func (t toaster) Warning(msg string) {
	fmt.Fprintf(t.err, "%s %s\n", warnFmt("!"), msg)
}
