package cli

import (
	"github.com/spf13/cobra"

	mirra "github.com/mirra-ai/mirra-go"
)

func agentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Manage agents",
	}
	cmd.AddCommand(agentsListCmd())
	cmd.AddCommand(agentsGetCmd())
	cmd.AddCommand(agentsCreateCmd())
	cmd.AddCommand(agentsUpdateCmd())
	cmd.AddCommand(agentsDeleteCmd())
	return cmd
}

func agentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			agents, err := client.Agents.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(agents)
		},
	}
}

func agentsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get an agent by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			agent, err := client.Agents.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(agent)
		},
	}
}

func agentsCreateCmd() *cobra.Command {
	var subdomain, name, systemPrompt, description string
	var disabled bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			params := mirra.CreateAgentParams{
				Subdomain:    subdomain,
				Name:         name,
				SystemPrompt: systemPrompt,
			}
			if description != "" {
				params.Description = &description
			}
			if disabled {
				enabled := false
				params.Enabled = &enabled
			}
			agent, err := client.Agents.Create(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(agent)
		},
	}
	cmd.Flags().StringVar(&subdomain, "subdomain", "", "agent subdomain (required)")
	cmd.Flags().StringVar(&name, "name", "", "agent name (required)")
	cmd.Flags().StringVar(&systemPrompt, "system-prompt", "", "system prompt")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "create the agent disabled")
	_ = cmd.MarkFlagRequired("subdomain")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func agentsUpdateCmd() *cobra.Command {
	var name, systemPrompt, description string
	var enabled bool
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an agent (only changed flags are sent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			var params mirra.UpdateAgentParams
			if cmd.Flags().Changed("name") {
				params.Name = &name
			}
			if cmd.Flags().Changed("system-prompt") {
				params.SystemPrompt = &systemPrompt
			}
			if cmd.Flags().Changed("description") {
				params.Description = &description
			}
			if cmd.Flags().Changed("enabled") {
				params.Enabled = &enabled
			}
			agent, err := client.Agents.Update(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return printJSON(agent)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&systemPrompt, "system-prompt", "", "new system prompt")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().BoolVar(&enabled, "enabled", true, "enable or disable the agent")
	return cmd
}

func agentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			result, err := client.Agents.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}
