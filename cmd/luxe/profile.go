package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"luxe/internal/api"
	"luxe/internal/config"
)

func newProfileCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the shipping profile",
	}

	cmd.AddCommand(newProfileShowCmd(cfg, jsonOutput))
	cmd.AddCommand(newProfileSetCmd(cfg, jsonOutput))
	return cmd
}

func newProfileShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored shipping profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				profile, err := client.GetProfile(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(profile)
				}
				return writeProfileDetail(profile)
			})
		},
	}
}

func newProfileSetCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	req := api.ProfileRequest{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the shipping profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				profile, err := client.PutProfile(cmd.Context(), req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(profile)
				}
				return writePlain("profile saved\n")
			})
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name (required)")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number (required)")
	cmd.Flags().StringVar(&req.Address1, "address1", "", "address line 1")
	cmd.Flags().StringVar(&req.Address2, "address2", "", "address line 2")
	cmd.Flags().StringVar(&req.City, "city", "", "city")
	cmd.Flags().StringVar(&req.State, "state", "", "state")
	cmd.Flags().StringVar(&req.Pin, "pin", "", "PIN code")

	return cmd
}

func writeProfileDetail(profile api.ProfileResponse) error {
	lines := []string{
		fmt.Sprintf("name: %s %s", profile.FirstName, profile.LastName),
		fmt.Sprintf("phone: %s", profile.Phone),
	}
	if profile.Address1 != "" {
		lines = append(lines, fmt.Sprintf("address1: %s", profile.Address1))
	}
	if profile.Address2 != "" {
		lines = append(lines, fmt.Sprintf("address2: %s", profile.Address2))
	}
	if profile.City != "" {
		lines = append(lines, fmt.Sprintf("city: %s", profile.City))
	}
	if profile.State != "" {
		lines = append(lines, fmt.Sprintf("state: %s", profile.State))
	}
	if profile.Pin != "" {
		lines = append(lines, fmt.Sprintf("pin: %s", profile.Pin))
	}
	lines = append(lines, fmt.Sprintf("updated_at: %s", formatTime(profile.UpdatedAt)))
	return writePlain("%s\n", strings.Join(lines, "\n"))
}
