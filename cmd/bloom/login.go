package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/bloom/internal/app"
	"github.com/five82/bloom/internal/session"
)

type loginOptions struct {
	accessToken  string
	refreshToken string
	nickname     string
}

func addLogin(topLevel *cobra.Command, g *globalOptions) {
	lo := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the tokens bloom uses to reach the service",
		Long: `Store the access token, refresh token and nickname issued by the Bloom
service. Values not given as flags are prompted for.`,
		Example: `
bloom login
bloom login --access-token "$TOKEN" --nickname mina
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Load(g.appOptions())
			if err != nil {
				return err
			}
			defer env.Close()
			return runLogin(cmd.InOrStdin(), cmd.OutOrStdout(), env.Sessions, *lo)
		},
	}
	cmd.Flags().StringVar(&lo.accessToken, "access-token", "", "access token")
	cmd.Flags().StringVar(&lo.refreshToken, "refresh-token", "", "refresh token")
	cmd.Flags().StringVar(&lo.nickname, "nickname", "", "name used in the greeting")

	topLevel.AddCommand(cmd)
}

func runLogin(in io.Reader, out io.Writer, store *session.Store, lo loginOptions) error {
	reader := bufio.NewReader(in)

	stored, err := store.Load()
	if err != nil {
		return err
	}

	if lo.accessToken == "" {
		if lo.accessToken, err = promptSecret(in, reader, out, "Access token: "); err != nil {
			return err
		}
	}
	if lo.accessToken == "" {
		return errors.New("access token is required")
	}
	if lo.refreshToken == "" {
		if lo.refreshToken, err = promptSecret(in, reader, out, "Refresh token (optional): "); err != nil {
			return err
		}
	}
	if lo.nickname == "" {
		label := "Nickname (optional): "
		if stored.Nickname != "" {
			label = fmt.Sprintf("Nickname [%s]: ", stored.Nickname)
		}
		if lo.nickname, err = prompt(reader, out, label); err != nil {
			return err
		}
		if lo.nickname == "" {
			lo.nickname = stored.Nickname
		}
	}

	sess := session.Session{
		AccessToken:  lo.accessToken,
		RefreshToken: lo.refreshToken,
		Nickname:     lo.nickname,
	}
	if err := store.Save(sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	who := sess.Nickname
	if who == "" {
		who = "bloom"
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", color.GreenString("Signed in"), who)
	return nil
}

// promptSecret reads a token without echo when in is a terminal and falls
// back to prompt otherwise.
func promptSecret(in io.Reader, r *bufio.Reader, out io.Writer, label string) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return prompt(r, out, label)
	}
	_, _ = fmt.Fprint(out, label)
	secret, err := term.ReadPassword(f.Fd())
	_, _ = fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

// prompt reads one trimmed line. End of input yields what was read so far.
func prompt(r *bufio.Reader, out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(out, label)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
