package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/core/nav"
	"github.com/Shivankitsingh3/School-Management-System/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errNotLoggedIn = errors.New("not logged in")
)

type commandLine struct {
	mgr *session.Manager
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL - sign in; the password will be prompted next")
	fmt.Fprintln(cli.out, "  whoami             - show the signed-in account")
	fmt.Fprintln(cli.out, "  menu               - show the navigation available to your role")
	fmt.Fprintln(cli.out, "  logout             - sign out and forget the stored tokens")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "The account email. The password will be prompted next.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(core.CleanString(*loginEmail, true /* lower */), string(pwd))
	case "whoami":
		return cli.whoami()
	case "menu":
		return cli.menu()
	case "logout":
		return cli.logout()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(email, pwd string) error {
	user, _, err := cli.mgr.Login(context.Background(), session.Credentials{Email: email, Password: pwd})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func (cli *commandLine) resolve() (session.Snapshot, error) {
	cli.mgr.Bootstrap(context.Background())
	snap := cli.mgr.Snapshot()
	if !snap.Authenticated() {
		return snap, errNotLoggedIn
	}
	return snap, nil
}

func (cli *commandLine) whoami() error {
	snap, err := cli.resolve()
	if err != nil {
		return err
	}
	usr := snap.User
	fmt.Fprintf(cli.out, "%s <%s>\n", usr.Name, usr.Email)
	role := usr.Role
	if usr.RoleDisplay != "" {
		role = usr.RoleDisplay
	}
	fmt.Fprintf(cli.out, "Role: %s\n", role)
	if usr.City != "" {
		fmt.Fprintf(cli.out, "City: %s\n", usr.City)
	}
	return nil
}

func (cli *commandLine) menu() error {
	snap, err := cli.resolve()
	if err != nil {
		return err
	}
	for _, entry := range nav.Compose(snap.User.Role) {
		fmt.Fprintf(cli.out, "%-20s %s\n", entry.Label, entry.Path)
	}
	return nil
}

func (cli *commandLine) logout() error {
	cli.mgr.Logout()
	fmt.Fprintln(cli.out, "Logged out")
	return nil
}
