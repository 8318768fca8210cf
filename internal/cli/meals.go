package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search meals by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.client()
			if err != nil {
				return err
			}
			meals, err := api.SearchByName(cmd.Context(), args[0])
			return writeResult(cmd.OutOrStdout(), meals, err)
		},
	}
}

func (c *CLI) letterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "letter <l>",
		Short: "List meals whose name starts with a letter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			letter := strings.TrimSpace(args[0])
			if len([]rune(letter)) != 1 {
				return fmt.Errorf("letter must be a single character, got %q", args[0])
			}
			api, err := c.client()
			if err != nil {
				return err
			}
			meals, err := api.SearchByLetter(cmd.Context(), letter)
			return writeResult(cmd.OutOrStdout(), meals, err)
		},
	}
}

func (c *CLI) lookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <id>",
		Short: "Look up a meal by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid meal id %q: %w", args[0], err)
			}
			api, err := c.client()
			if err != nil {
				return err
			}
			meal, err := api.GetByID(cmd.Context(), id)
			return writeResult(cmd.OutOrStdout(), meal, err)
		},
	}
}

func (c *CLI) randomCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Fetch a random meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.client()
			if err != nil {
				return err
			}
			meal, err := api.GetRandom(cmd.Context())
			return writeResult(cmd.OutOrStdout(), meal, err)
		},
	}
}
