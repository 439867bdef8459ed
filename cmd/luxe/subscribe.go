package main

import (
	"github.com/spf13/cobra"

	"luxe/internal/api"
	internalauth "luxe/internal/auth"
	"luxe/internal/config"
)

func newSubscribeCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <email>",
		Short: "Add a newsletter subscriber",
		Args:  requireExactlyArgs(1, "email is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := internalauth.NormalizeEmail(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.Subscribe(cmd.Context(), api.SubscribeRequest{Email: email})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				if resp.Added {
					return writePlain("subscribed %s\n", email)
				}
				return writePlain("%s is already subscribed\n", email)
			})
		},
	}
}
