package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Game profile commands",
	}

	cmd.AddCommand(newProfileCreateCmd())
	cmd.AddCommand(newProfileListCmd())
	cmd.AddCommand(newProfileGetCmd())
	cmd.AddCommand(newProfileMainCmd())
	cmd.AddCommand(newProfileSetMainCmd())
	cmd.AddCommand(newProfileDeleteCmd())

	return cmd
}

func newProfileCreateCmd() *cobra.Command {
	var game, name string
	var rating int
	var asMain bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a game profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"game":         game,
				"in_game_name": name,
				"skill_rating": rating,
				"as_main":      asMain,
			}
			var result GameProfile

			if err := client.Post("/api/v1/profiles", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&game, "game", "", "Game title (required)")
	cmd.Flags().StringVar(&name, "name", "", "In-game name (required)")
	cmd.Flags().IntVar(&rating, "rating", 0, "Skill rating")
	cmd.Flags().BoolVar(&asMain, "main", false, "Make this the main profile")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your game profiles in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []GameProfile

			if err := client.Get("/api/v1/profiles", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProfileGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a game profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameProfile

			if err := client.Get(fmt.Sprintf("/api/v1/profiles/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProfileMainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "main",
		Short: "Show your main game profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameProfile

			if err := client.Get("/api/v1/profiles/main", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProfileSetMainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-main <id>",
		Short: "Make a profile your main profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameProfile

			if err := client.Put(fmt.Sprintf("/api/v1/profiles/%s/main", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProfileDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/profiles/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted profile %s", args[0]))
			return nil
		},
	}
}
