package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/identity"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a local account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		in := bufio.NewReader(cmd.InOrStdin())
		email, err := flagOrPrompt(cmd, in, "email", "Email: ")
		if err != nil {
			return err
		}
		name, err := flagOrPrompt(cmd, in, "name", "Full name: ")
		if err != nil {
			return err
		}
		password, err := flagOrPrompt(cmd, in, "password", "Password: ")
		if err != nil {
			return err
		}

		ctx := cmdContext(cmd)
		u, err := svc.identity.Signup(ctx, email, password, name)
		if err != nil {
			return authFailure(err)
		}
		if err := svc.tracker.SignIn(ctx, u); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Your account is ready.\n", u.Name())
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmdContext(cmd)
		if google, _ := cmd.Flags().GetBool("google"); google {
			_, err := svc.identity.LoginWithGoogle(ctx)
			return authFailure(err)
		}

		in := bufio.NewReader(cmd.InOrStdin())
		email, err := flagOrPrompt(cmd, in, "email", "Email: ")
		if err != nil {
			return err
		}
		password, err := flagOrPrompt(cmd, in, "password", "Password: ")
		if err != nil {
			return err
		}

		u, err := svc.identity.Login(ctx, email, password)
		if err != nil {
			return authFailure(err)
		}
		if err := svc.tracker.SignIn(ctx, u); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", u.Name())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of the current account",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		if svc.tracker.User() == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		if err := svc.identity.Logout(cmdContext(cmd)); err != nil {
			return err
		}
		svc.tracker.SignOut()
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		u := svc.tracker.User()
		if u == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", u.Name(), u.Email)
		fmt.Fprintf(cmd.OutOrStdout(), "  uid:      %s\n", u.UID)
		fmt.Fprintf(cmd.OutOrStdout(), "  provider: %s\n", u.Provider)
		fmt.Fprintf(cmd.OutOrStdout(), "  joined:   %s\n", u.CreatedAt.Format("Jan 02, 2006"))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{signupCmd, loginCmd} {
		c.Flags().String("email", "", "Account email (prompted when omitted)")
		c.Flags().String("password", "", "Account password (prompted when omitted)")
	}
	signupCmd.Flags().String("name", "", "Display name (prompted when omitted)")
	loginCmd.Flags().Bool("google", false, "Sign in with Google")
}

// flagOrPrompt returns the flag value, or reads one line from in after
// printing prompt.
func flagOrPrompt(cmd *cobra.Command, in *bufio.Reader, flag, prompt string) (string, error) {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v, nil
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", flag, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// authFailure converts a provider error into the user-facing message.
func authFailure(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s (%s)", identity.Message(err), identity.Code(err))
}
