package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lupon/admin-client/internal/infrastructure/auth"
	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Long: `Exchange username and password for an access and refresh token pair.

The password is read from --password, then LUPON_PASSWORD, then one line of stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				return errors.New("--username is required")
			}
			if password == "" {
				password = os.Getenv("LUPON_PASSWORD")
			}
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if err := c.app.Client.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Client.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

type sessionStatus struct {
	LoggedIn   bool      `json:"logged_in"`
	APIRoot    string    `json:"api_root"`
	UserID     int       `json:"user_id,omitempty"`
	ExpiresAt  time.Time `json:"expires_at,omitzero"`
	Expired    bool      `json:"expired"`
	HasRefresh bool      `json:"has_refresh"`
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens := c.app.Tokens
			st := sessionStatus{
				APIRoot:    c.app.Client.APIRoot(),
				HasRefresh: tokens.RefreshToken() != "",
			}

			claims, err := tokens.Claims()
			switch {
			case errors.Is(err, auth.ErrNoToken):
			case err != nil:
				return err
			default:
				st.LoggedIn = true
				st.UserID = claims.UserID
				st.ExpiresAt = claims.ExpiresAt
				st.Expired = claims.Expired(time.Now())
			}
			return printJSON(cmd, st)
		},
	}
}
