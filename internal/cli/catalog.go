package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List meal categories with descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.client()
			if err != nil {
				return err
			}
			categories, err := api.ListCategories(cmd.Context())
			return writeResult(cmd.OutOrStdout(), categories, err)
		},
	}
}

// filterCommand creates the "filter" command. Exactly one filter flag is required.
func (c *CLI) filterCommand() *cobra.Command {
	var ingredient, area, category string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter meals by main ingredient, area or category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			switch {
			case cmd.Flags().Changed("ingredient"):
				meals, err := api.FilterByIngredient(ctx, ingredient)
				return writeResult(cmd.OutOrStdout(), meals, err)
			case cmd.Flags().Changed("area"):
				meals, err := api.FilterByArea(ctx, area)
				return writeResult(cmd.OutOrStdout(), meals, err)
			default:
				meals, err := api.FilterByCategory(ctx, category)
				return writeResult(cmd.OutOrStdout(), meals, err)
			}
		},
	}

	cmd.Flags().StringVar(&ingredient, "ingredient", "", "main ingredient, e.g. chicken_breast")
	cmd.Flags().StringVar(&area, "area", "", "area, e.g. Canadian")
	cmd.Flags().StringVar(&category, "category", "", "category, e.g. Seafood")
	cmd.MarkFlagsMutuallyExclusive("ingredient", "area", "category")
	cmd.MarkFlagsOneRequired("ingredient", "area", "category")

	return cmd
}

// listCommand creates the "list" command group.
func (c *CLI) listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List category names, ingredients or areas",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List category names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.client()
			if err != nil {
				return err
			}
			names, err := api.ListCategoryNames(cmd.Context())
			return writeResult(cmd.OutOrStdout(), names, err)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "ingredients",
		Short: "List ingredients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.client()
			if err != nil {
				return err
			}
			ingredients, err := api.ListIngredients(cmd.Context())
			return writeResult(cmd.OutOrStdout(), ingredients, err)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "areas",
		Short: "List area names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.client()
			if err != nil {
				return err
			}
			names, err := api.ListAreaNames(cmd.Context())
			return writeResult(cmd.OutOrStdout(), names, err)
		},
	})

	return cmd
}
