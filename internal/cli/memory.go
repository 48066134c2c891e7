package cli

import (
	"github.com/spf13/cobra"

	mirra "github.com/mirra-ai/mirra-go"
)

func memoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Store, search, and manage memories",
	}
	cmd.AddCommand(memoryCreateCmd())
	cmd.AddCommand(memorySearchCmd())
	cmd.AddCommand(memoryQueryCmd())
	cmd.AddCommand(memoryFindCmd())
	cmd.AddCommand(memoryUpdateCmd())
	cmd.AddCommand(memoryDeleteCmd())
	return cmd
}

func memoryCreateCmd() *cobra.Command {
	var content, memType, metadata string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Store a new memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := parseJSONMap(metadata, "metadata")
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			result, err := client.Memory.Create(cmd.Context(), mirra.MemoryEntity{
				Content:  content,
				Type:     memType,
				Metadata: meta,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "memory content (required)")
	cmd.Flags().StringVar(&memType, "type", "", "memory type tag")
	cmd.Flags().StringVar(&metadata, "metadata", "", "JSON metadata object")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func memorySearchCmd() *cobra.Command {
	var limit int
	var threshold float64
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search memories by semantic similarity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			query := mirra.MemorySearchQuery{Query: args[0]}
			if cmd.Flags().Changed("limit") {
				query.Limit = &limit
			}
			if cmd.Flags().Changed("threshold") {
				query.Threshold = &threshold
			}
			results, err := client.Memory.Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of results")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "minimum similarity score")
	return cmd
}

func memoryQueryCmd() *cobra.Command {
	var filters string
	var limit int
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query memories with filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseJSONMap(filters, "filters")
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			params := mirra.MemoryQueryParams{Filters: f}
			if cmd.Flags().Changed("limit") {
				params.Limit = &limit
			}
			entities, err := client.Memory.Query(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(entities)
		},
	}
	cmd.Flags().StringVar(&filters, "filters", "", "JSON filter object")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of results")
	return cmd
}

func memoryFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <id>",
		Short: "Find a single memory by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			entity, err := client.Memory.FindOne(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(entity)
		},
	}
}

func memoryUpdateCmd() *cobra.Command {
	var content, metadata string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a memory (only changed flags are sent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var params mirra.MemoryUpdateParams
			if cmd.Flags().Changed("content") {
				params.Content = &content
			}
			if cmd.Flags().Changed("metadata") {
				meta, err := parseJSONMap(metadata, "metadata")
				if err != nil {
					return err
				}
				params.Metadata = meta
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			result, err := client.Memory.Update(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "new content")
	cmd.Flags().StringVar(&metadata, "metadata", "", "new JSON metadata object")
	return cmd
}

func memoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			result, err := client.Memory.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}
