package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "View other members' profiles",
	}

	cmd.AddCommand(newUserViewCmd())
	cmd.AddCommand(newUserProfileCmd())

	return cmd
}

func newUserViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <user-id>",
		Short: "View a member's public profile card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ProfileView

			if err := client.Get(fmt.Sprintf("/api/v1/users/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newUserProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <user-id>",
		Short: "View a member's full profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ProfileView

			if err := client.Get(fmt.Sprintf("/api/v1/users/%s/profile", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
