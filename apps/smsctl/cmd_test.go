package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/core/session"
	"github.com/Shivankitsingh3/School-Management-System/storage/tokens"
)

var errBadCredentials = errors.New("invalid credentials")

// fakeAPI implements session.API against a single known account.
type fakeAPI struct {
	password string
	profile  session.Profile
}

func (f *fakeAPI) Login(_ context.Context, creds session.Credentials) (session.TokenPair, error) {
	if creds.Email != f.profile.Email || creds.Password != f.password {
		return session.TokenPair{}, errBadCredentials
	}
	return session.TokenPair{Access: "access-token", Refresh: "refresh-token"}, nil
}

func (f *fakeAPI) Me(_ context.Context) (session.Profile, error) {
	return f.profile, nil
}

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	store, err := tokens.NewFile(filepath.Join(t.TempDir(), "tokens.json"))
	if err != nil {
		t.Fatalf("NewFile() failed, %v", err)
	}

	api := &fakeAPI{
		password: "s3cret!pass",
		profile: session.Profile{
			ID:    1,
			Name:  "Awa Ndiaye",
			Email: "awa@test.cd",
			Role:  core.RoleTeacher,
		},
	}

	out := new(bytes.Buffer)
	return &commandLine{
		mgr: session.NewManager(store, api),
		out: out,
	}, out
}

type cliTest struct {
	name     string
	args     []string // without program name
	pwd      string
	wantErr  error
	wantText string
}

func Test_commandLine_login(t *testing.T) {
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no email", args: []string{"login"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"login", "-email", "awa@test.cd"}, wantErr: errHelp},
		{name: "wrong password", args: []string{"login", "-email", "awa@test.cd"}, pwd: "nope", wantErr: errBadCredentials},
		{name: "unknown account", args: []string{"login", "-email", "lol@test.cd"}, pwd: "s3cret!pass", wantErr: errBadCredentials},
		{name: "ok", args: []string{"login", "-email", "awa@test.cd"}, pwd: "s3cret!pass", wantText: "Logged in as Awa Ndiaye (teacher)"},
		{name: "email is normalized", args: []string{"login", "-email", " AWA@test.cd "}, pwd: "s3cret!pass", wantText: "Logged in as Awa Ndiaye (teacher)"},
	}
	for _, tt := range tests {
		cli, out := setup(t)
		args := append([]string{"smsctl"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("cli.run() unexpected error = %v", err)
			}
			if tt.wantText != "" && !strings.Contains(out.String(), tt.wantText) {
				t.Errorf("cli.run() output = %q, want it to contain %q", out.String(), tt.wantText)
			}
		})
	}
}

func Test_commandLine_whoami(t *testing.T) {
	cli, out := setup(t)

	if err := cli.run([]string{"smsctl", "whoami"}); !errors.Is(err, errNotLoggedIn) {
		t.Errorf("whoami before login: error = %v, want %v", err, errNotLoggedIn)
	}

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cret!pass"), nil }
	if err := cli.run([]string{"smsctl", "login", "-email", "awa@test.cd"}); err != nil {
		t.Fatalf("login failed, %v", err)
	}

	out.Reset()
	if err := cli.run([]string{"smsctl", "whoami"}); err != nil {
		t.Fatalf("whoami failed, %v", err)
	}
	if got := out.String(); !strings.Contains(got, "Awa Ndiaye <awa@test.cd>") || !strings.Contains(got, "Role: teacher") {
		t.Errorf("whoami output = %q", got)
	}
}

func Test_commandLine_menu(t *testing.T) {
	cli, out := setup(t)

	if err := cli.run([]string{"smsctl", "menu"}); !errors.Is(err, errNotLoggedIn) {
		t.Errorf("menu before login: error = %v, want %v", err, errNotLoggedIn)
	}

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cret!pass"), nil }
	if err := cli.run([]string{"smsctl", "login", "-email", "awa@test.cd"}); err != nil {
		t.Fatalf("login failed, %v", err)
	}

	out.Reset()
	if err := cli.run([]string{"smsctl", "menu"}); err != nil {
		t.Fatalf("menu failed, %v", err)
	}
	for _, want := range []string{"Mark Attendance", "/teacher/attendance", "Submissions"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("menu output missing %q:\n%s", want, out.String())
		}
	}
}

func Test_commandLine_logout(t *testing.T) {
	cli, out := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cret!pass"), nil }
	if err := cli.run([]string{"smsctl", "login", "-email", "awa@test.cd"}); err != nil {
		t.Fatalf("login failed, %v", err)
	}

	if err := cli.run([]string{"smsctl", "logout"}); err != nil {
		t.Fatalf("logout failed, %v", err)
	}
	if !strings.Contains(out.String(), "Logged out") {
		t.Errorf("logout output = %q", out.String())
	}

	if err := cli.run([]string{"smsctl", "whoami"}); !errors.Is(err, errNotLoggedIn) {
		t.Errorf("whoami after logout: error = %v, want %v", err, errNotLoggedIn)
	}
}
