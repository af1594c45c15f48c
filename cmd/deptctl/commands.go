package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/target/deptdash/internal/domain/auth"
	"github.com/target/deptdash/internal/domain/model"
	apperrors "github.com/target/deptdash/internal/errors"
)

// maxParallelGets bounds concurrent requests issued by "get".
const maxParallelGets = 4

func newFlagSet(cmdCtx *commandContext, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Out)
	return fs
}

type credentialFlags struct {
	email         string
	password      string
	passwordStdin bool
}

func (c *credentialFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "account email")
	fs.StringVar(&c.password, "password", "", "account password")
	fs.BoolVar(&c.passwordStdin, "password-stdin", false, "read the password from the first line of stdin")
}

func (c *credentialFlags) resolve(in io.Reader) error {
	if !c.passwordStdin {
		return nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read password: %w", err)
	}
	c.password = strings.TrimRight(line, "\r\n")
	return nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "login")
	var creds credentialFlags
	creds.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := creds.resolve(cmdCtx.In); err != nil {
		return err
	}

	ws := cmdCtx.Workspace
	if err := ws.Auth.Login(cmdCtx.Ctx, domainauth.Credentials{Email: creds.email, Password: creds.password}); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "Logged in (profile %s)\n", ws.Profile)
}

func runRegister(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "register")
	var creds credentialFlags
	var name string
	fs.StringVar(&name, "name", "", "full name")
	creds.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := creds.resolve(cmdCtx.In); err != nil {
		return err
	}

	_, err := cmdCtx.Workspace.Auth.Register(cmdCtx.Ctx, domainauth.Registration{
		Name:     name,
		Email:    creds.email,
		Password: creds.password,
	})
	if err != nil {
		return err
	}
	return writef(cmdCtx.Out, "Registration successful! You can login now.\n")
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	if err := cmdCtx.Workspace.Auth.Logout(cmdCtx.Ctx); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "Logged out (profile %s)\n", cmdCtx.Workspace.Profile)
}

func runStatus(cmdCtx *commandContext, _ []string) error {
	ws := cmdCtx.Workspace
	if ws.Auth.Authenticated(cmdCtx.Ctx) {
		return writef(cmdCtx.Out, "Logged in (profile %s)\n", ws.Profile)
	}
	return writef(cmdCtx.Out, "Not logged in (profile %s)\n", ws.Profile)
}

func runList(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "list")
	query := fs.String("q", "", "only show departments whose name or description contains this text")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := cmdCtx.Workspace.Departments.List(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return printDepartments(cmdCtx.Out, list.Filter(*query), *asJSON)
}

func runAdd(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "add")
	name := fs.String("name", "", "department name")
	description := fs.String("description", "", "department description")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := cmdCtx.Workspace.Departments.Add(cmdCtx.Ctx, model.CreateDepartmentRequest{
		Name:        *name,
		Description: *description,
	})
	if err != nil {
		if !res.Created.IsZero() {
			_ = writef(cmdCtx.Out, "Department added successfully! (id %s)\n", res.Created.ID)
		}
		return err
	}
	if !*asJSON {
		if err := writef(cmdCtx.Out, "Department added successfully!\n\n"); err != nil {
			return err
		}
	}
	return printDepartments(cmdCtx.Out, res.Departments, *asJSON)
}

func runDelete(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "delete")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		_ = writef(cmdCtx.Out, "Usage: deptctl delete [-json] <id>\n")
		return errUsage
	}

	res, err := cmdCtx.Workspace.Departments.Delete(cmdCtx.Ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if !*asJSON {
		if err := writef(cmdCtx.Out, "Department deleted successfully!\n\n"); err != nil {
			return err
		}
	}
	return printDepartments(cmdCtx.Out, res.Departments, *asJSON)
}

// runGet fetches every id concurrently; output keeps argument order.
func runGet(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "get")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids := fs.Args()
	if len(ids) == 0 {
		_ = writef(cmdCtx.Out, "Usage: deptctl get [-json] <id> [id...]\n")
		return errUsage
	}

	found := make(model.DepartmentList, len(ids))
	g, ctx := errgroup.WithContext(cmdCtx.Ctx)
	g.SetLimit(maxParallelGets)
	for i, id := range ids {
		g.Go(func() error {
			dept, err := cmdCtx.Workspace.Departments.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("department %s: %w", id, err)
			}
			found[i] = dept
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return printDepartments(cmdCtx.Out, found, *asJSON)
}

func printDepartments(w io.Writer, list model.DepartmentList, asJSON bool) error {
	if asJSON {
		if list == nil {
			list = model.DepartmentList{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	if list.Len() == 0 {
		return writef(w, "No departments found\n")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\tDESCRIPTION\n"); err != nil {
		return err
	}
	for _, d := range list {
		if err := writef(tw, "%s\t%s\t%s\n", d.ID, d.Name, d.Description); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	noun := "departments"
	if list.Len() == 1 {
		noun = "department"
	}
	return writef(w, "\n%d %s\n", list.Len(), noun)
}

func userMessage(err error) string {
	if apperrors.GetCode(err) == "" {
		return err.Error()
	}
	msg := apperrors.Message(err)
	if field := apperrors.GetField(err); field != "" && apperrors.IsValidation(err) {
		return fmt.Sprintf("%s (%s)", msg, field)
	}
	return msg
}
