package main

import (
	"github.com/spf13/cobra"

	"luxe/internal/api"
	internalauth "luxe/internal/auth"
	"luxe/internal/config"
)

func newLoginCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in with an emailed one-time code",
		Args:  requireExactlyArgs(1, "email is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := internalauth.NormalizeEmail(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				if code == "" {
					if err := client.RequestOTP(cmd.Context(), api.OTPRequestRequest{Email: email}); err != nil {
						return err
					}
					return writePlain("code sent to %s; run: luxe login %s --code <code>\n", email, email)
				}

				session, err := client.VerifyOTP(cmd.Context(), api.OTPVerifyRequest{Email: email, Code: code})
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(session)
				}
				if err := writePlain("logged in as %s until %s\n", email, formatTime(session.ExpiresAt)); err != nil {
					return err
				}
				return writePlain("export LUXE_API_TOKEN=%s\n", session.Token)
			})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "one-time code from the email")

	return cmd
}

func newLogoutCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				if err := client.Logout(cmd.Context()); err != nil {
					return err
				}
				return writePlain("logged out\n")
			})
		},
	}
}

func newWhoamiCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				user, err := client.Me(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(user)
				}
				if user.Name != "" {
					return writePlain("%s <%s>\n", user.Name, user.Email)
				}
				return writePlain("%s\n", user.Email)
			})
		},
	}
}
