package cli

import (
	"github.com/spf13/cobra"

	mirra "github.com/mirra-ai/mirra-go"
)

func resourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List and call resources",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resources, err := client.Resources.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(resources)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Get a resource by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resource, err := client.Resources.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(resource)
		},
	})

	cmd.AddCommand(resourcesCallCmd())
	return cmd
}

func resourcesCallCmd() *cobra.Command {
	var params string
	cmd := &cobra.Command{
		Use:   "call <id> <method>",
		Short: "Call a resource method",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseJSONMap(params, "params")
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			result, err := client.Resources.Call(cmd.Context(), mirra.CallResourceParams{
				ResourceID: args[0],
				Method:     args[1],
				Params:     p,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&params, "params", "", "JSON parameters for the method")
	return cmd
}

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Browse and install templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			templates, err := client.Templates.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(templates)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Get a template by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			template, err := client.Templates.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(template)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "install <id>",
		Short: "Install a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			result, err := client.Templates.Install(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	})

	return cmd
}

func marketplaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marketplace",
		Short: "Browse and search the marketplace",
	}
	cmd.AddCommand(marketplaceBrowseCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search the marketplace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			items, err := client.Marketplace.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	})

	return cmd
}

func marketplaceBrowseCmd() *cobra.Command {
	var itemType, category, search string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse marketplace items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			items, err := client.Marketplace.Browse(cmd.Context(), &mirra.MarketplaceFilters{
				Type:     mirra.MarketplaceItemType(itemType),
				Category: category,
				Search:   search,
				Limit:    limit,
				Offset:   offset,
			})
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	}
	cmd.Flags().StringVar(&itemType, "type", "", "item type (agent, script, resource, template)")
	cmd.Flags().StringVar(&category, "category", "", "category filter")
	cmd.Flags().StringVar(&search, "search", "", "search filter")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of items")
	cmd.Flags().IntVar(&offset, "offset", 0, "pagination offset")
	return cmd
}
