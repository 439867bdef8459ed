package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	internalauth "luxe/internal/auth"
	"luxe/internal/config"
	"luxe/internal/store"
)

func newAdminUserCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage local admin accounts",
		Long:  "Manage local admin accounts. These commands open the database directly, so they work without a running server and without an admin token.",
	}
	cmd.AddCommand(newAdminUserAddCmd(cfg, jsonOutput))
	cmd.AddCommand(newAdminUserListCmd(cfg, jsonOutput))
	cmd.AddCommand(newAdminUserSetDisabledCmd(cfg, jsonOutput, "disable", "Disable one admin account", true))
	cmd.AddCommand(newAdminUserSetDisabledCmd(cfg, jsonOutput, "enable", "Enable one admin account", false))
	cmd.AddCommand(newAdminUserDeleteCmd(cfg, jsonOutput))
	return cmd
}

func withStore(cfg *config.Config, fn func(*store.Store) error) error {
	if cfg == nil || cfg.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func newAdminUserAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create one admin account",
		Args:  requireExactlyArgs(1, "username is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !passwordStdin {
				return fmt.Errorf("--password-stdin is required")
			}

			username, err := internalauth.NormalizeUsername(args[0])
			if err != nil {
				return err
			}

			passwordBytes, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			password := strings.TrimSpace(string(passwordBytes))
			if err := internalauth.ValidatePassword(password); err != nil {
				return err
			}

			passwordHash, err := internalauth.HashPassword(password)
			if err != nil {
				return err
			}

			return withStore(cfg, func(st *store.Store) error {
				created, err := st.CreateAdminUser(cmd.Context(), username, passwordHash, time.Now().UTC())
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(map[string]any{
						"id":       created.ID,
						"username": created.Username,
						"disabled": created.Disabled,
					})
				}
				return writePlain("created admin user %s (%s)\n", created.Username, created.ID)
			})
		},
	}

	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	return cmd
}

func newAdminUserListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(st *store.Store) error {
				users, err := st.ListAdminUsers(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					rows := make([]map[string]any, 0, len(users))
					for _, user := range users {
						rows = append(rows, map[string]any{
							"id":       user.ID,
							"username": user.Username,
							"disabled": user.Disabled,
						})
					}
					return writeJSON(map[string]any{"count": len(rows), "users": rows})
				}
				if len(users) == 0 {
					return writePlain("no admin users configured\n")
				}
				if err := writePlain("USERNAME\tSTATUS\tID\n"); err != nil {
					return err
				}
				for _, user := range users {
					status := "enabled"
					if user.Disabled {
						status = "disabled"
					}
					if err := writePlain("%s\t%s\t%s\n", user.Username, status, user.ID); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newAdminUserSetDisabledCmd(cfg *config.Config, jsonOutput *bool, name, short string, disabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <username>",
		Short: short,
		Args:  requireExactlyArgs(1, "username is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := internalauth.NormalizeUsername(args[0])
			if err != nil {
				return err
			}

			return withStore(cfg, func(st *store.Store) error {
				if disabled {
					if err := guardLastEnabledAdmin(cmd, st, username); err != nil {
						return err
					}
				}

				user, err := st.SetAdminUserDisabled(cmd.Context(), username, disabled, time.Now().UTC())
				if err != nil {
					return err
				}
				if user == nil {
					return fmt.Errorf("admin user %q not found", username)
				}

				if *jsonOutput {
					return writeJSON(map[string]any{
						"username": user.Username,
						"disabled": user.Disabled,
					})
				}
				state := "enabled"
				if user.Disabled {
					state = "disabled"
				}
				return writePlain("%s %s\n", state, user.Username)
			})
		},
	}
}

func newAdminUserDeleteCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete one admin account",
		Args:  requireExactlyArgs(1, "username is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := internalauth.NormalizeUsername(args[0])
			if err != nil {
				return err
			}

			return withStore(cfg, func(st *store.Store) error {
				if err := guardLastEnabledAdmin(cmd, st, username); err != nil {
					return err
				}

				deleted, err := st.DeleteAdminUser(cmd.Context(), username)
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("admin user %q not found", username)
				}

				if *jsonOutput {
					return writeJSON(map[string]any{"deleted": username})
				}
				return writePlain("deleted %s\n", username)
			})
		},
	}
}

// guardLastEnabledAdmin refuses to remove the only enabled admin account.
func guardLastEnabledAdmin(cmd *cobra.Command, st *store.Store, username string) error {
	user, err := st.GetAdminUserByUsername(cmd.Context(), username)
	if err != nil {
		return err
	}
	if user == nil || user.Disabled {
		return nil
	}
	enabled, err := st.CountEnabledAdminUsers(cmd.Context())
	if err != nil {
		return err
	}
	if enabled <= 1 {
		return fmt.Errorf("%q is the last enabled admin user", username)
	}
	return nil
}
