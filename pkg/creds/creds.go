// Package creds resolves controller credentials from flags, environment
// variables, config files, and interactive prompts. Credentials are
// input only and never persisted.
package creds

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Environment variables consulted by Env.
const (
	EnvUsername = "VLANSCOUT_USERNAME"
	EnvPassword = "VLANSCOUT_PASSWORD"
)

// Credentials is a username/password pair for the controller.
type Credentials struct {
	Username string
	Password string
}

// Complete reports whether both fields are set.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

// Provider fills in missing credential fields. Implementations only
// touch fields that are still empty.
type Provider interface {
	Fill(ctx context.Context, have Credentials) (Credentials, error)
}

// Static supplies fixed values, such as flag or config-file settings.
type Static struct {
	Username string
	Password string
}

func (s Static) Fill(_ context.Context, have Credentials) (Credentials, error) {
	if have.Username == "" {
		have.Username = s.Username
	}
	if have.Password == "" {
		have.Password = s.Password
	}
	return have, nil
}

// Env reads EnvUsername and EnvPassword.
type Env struct{}

func (Env) Fill(_ context.Context, have Credentials) (Credentials, error) {
	if have.Username == "" {
		have.Username = os.Getenv(EnvUsername)
	}
	if have.Password == "" {
		have.Password = os.Getenv(EnvPassword)
	}
	return have, nil
}

// Terminal prompts for whatever is still missing. When stdin is not a
// terminal it leaves the fields untouched rather than blocking, so
// piped and scripted runs fail fast on validation instead of hanging.
type Terminal struct {
	In  *os.File  // defaults to os.Stdin
	Out io.Writer // defaults to os.Stderr
}

func (t Terminal) Fill(_ context.Context, have Credentials) (Credentials, error) {
	in := t.In
	if in == nil {
		in = os.Stdin
	}
	out := t.Out
	if out == nil {
		out = os.Stderr
	}

	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return have, nil
	}

	if have.Username == "" {
		fmt.Fprint(out, "Username: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil {
			return have, fmt.Errorf("reading username: %w", err)
		}
		have.Username = strings.TrimSpace(line)
	}
	if have.Password == "" {
		fmt.Fprint(out, "Password: ")
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return have, fmt.Errorf("reading password: %w", err)
		}
		have.Password = string(pw)
	}
	return have, nil
}

// Chain applies providers in order, stopping early once the
// credentials are complete.
type Chain []Provider

func (c Chain) Fill(ctx context.Context, have Credentials) (Credentials, error) {
	for _, p := range c {
		if have.Complete() {
			return have, nil
		}
		var err error
		have, err = p.Fill(ctx, have)
		if err != nil {
			return have, err
		}
	}
	return have, nil
}
