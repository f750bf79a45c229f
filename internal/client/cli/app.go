package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const usage = `usage: authctl [-server URL] [-token TOKEN] <command>

commands:
  register   create an account (prompts for credentials)
  login      authenticate and print the session token
  profile    fetch the profile for the given -token
  update     apply a JSON profile patch read from stdin

The token for profile/update can also come from the AUTHCTL_TOKEN
environment variable.`

// Run executes one authctl command. in/out are injectable for tests.
func Run(args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("authctl", flag.ContinueOnError)
	server := fs.String("server", "http://localhost:5000", "account server base URL")
	token := fs.String("token", os.Getenv("AUTHCTL_TOKEN"), "session token for authenticated commands")
	fs.SetOutput(out)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(out, usage)
		return fmt.Errorf("no command given")
	}

	client := NewClient(strings.TrimRight(*server, "/"))
	reader := bufio.NewReader(in)

	switch cmd := fs.Arg(0); cmd {
	case "register":
		username, password, err := promptCredentials(reader, out)
		if err != nil {
			return err
		}
		msg, err := client.Register(username, password)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
		return nil

	case "login":
		username, password, err := promptCredentials(reader, out)
		if err != nil {
			return err
		}
		tok, err := client.Login(username, password)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, tok)
		return nil

	case "profile":
		if *token == "" {
			return fmt.Errorf("profile requires -token or AUTHCTL_TOKEN")
		}
		body, err := client.Profile(*token)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, body)
		return nil

	case "update":
		if *token == "" {
			return fmt.Errorf("update requires -token or AUTHCTL_TOKEN")
		}
		patch, err := io.ReadAll(reader)
		if err != nil {
			return err
		}
		body, err := client.Update(*token, patch)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, body)
		return nil

	default:
		fmt.Fprintln(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func promptCredentials(in *bufio.Reader, out io.Writer) (string, string, error) {
	fmt.Fprint(out, "Username: ")
	username, err := in.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	username = strings.TrimSpace(username)

	password, err := readPassword(in, out)
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

// readPassword disables echo when stdin is a terminal, otherwise it falls
// back to a plain line read (tests, piped input).
func readPassword(in *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
