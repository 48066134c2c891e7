package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mirra "github.com/mirra-ai/mirra-go"
)

func scriptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scripts",
		Short: "Manage and run scripts",
	}
	cmd.AddCommand(scriptsListCmd())
	cmd.AddCommand(scriptsGetCmd())
	cmd.AddCommand(scriptsCreateCmd())
	cmd.AddCommand(scriptsUpdateCmd())
	cmd.AddCommand(scriptsDeleteCmd())
	cmd.AddCommand(scriptsDeployCmd())
	cmd.AddCommand(scriptsInvokeCmd())
	return cmd
}

func scriptsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			scripts, err := client.Scripts.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(scripts)
		},
	}
}

func scriptsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a script by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			script, err := client.Scripts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(script)
		},
	}
}

func scriptsCreateCmd() *cobra.Command {
	var name, description, codeFile, runtime string
	var timeout, memory int
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a script from a source file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(codeFile)
			if err != nil {
				return fmt.Errorf("read code file: %w", err)
			}
			if runtime != "" && !mirra.ValidScriptRuntime(runtime) {
				return fmt.Errorf("unknown runtime %q", runtime)
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			params := mirra.CreateScriptParams{
				Name: name,
				Code: string(code),
			}
			if description != "" {
				params.Description = &description
			}
			if runtime != "" {
				rt := mirra.ScriptRuntime(runtime)
				params.Runtime = &rt
			}
			if timeout > 0 || memory > 0 {
				params.Config = &mirra.ScriptConfig{Timeout: timeout, Memory: memory}
			}
			script, err := client.Scripts.Create(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(script)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "script name (required)")
	cmd.Flags().StringVar(&codeFile, "code-file", "", "path to the script source (required)")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&runtime, "runtime", "", "runtime (nodejs18 or python3.11)")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "execution timeout in milliseconds")
	cmd.Flags().IntVar(&memory, "memory", 0, "memory limit in megabytes")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("code-file")
	return cmd
}

func scriptsUpdateCmd() *cobra.Command {
	var name, description, codeFile string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a script (only changed flags are sent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			var params mirra.UpdateScriptParams
			if cmd.Flags().Changed("name") {
				params.Name = &name
			}
			if cmd.Flags().Changed("description") {
				params.Description = &description
			}
			if cmd.Flags().Changed("code-file") {
				code, err := os.ReadFile(codeFile)
				if err != nil {
					return fmt.Errorf("read code file: %w", err)
				}
				codeStr := string(code)
				params.Code = &codeStr
			}
			script, err := client.Scripts.Update(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return printJSON(script)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&codeFile, "code-file", "", "path to new script source")
	return cmd
}

func scriptsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			result, err := client.Scripts.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func scriptsDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy <id>",
		Short: "Deploy a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			result, err := client.Scripts.Deploy(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func scriptsInvokeCmd() *cobra.Command {
	var payload string
	cmd := &cobra.Command{
		Use:   "invoke <id>",
		Short: "Invoke a deployed script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p any
			if payload != "" {
				if err := json.Unmarshal([]byte(payload), &p); err != nil {
					return fmt.Errorf("invalid JSON for --payload: %w", err)
				}
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			result, err := client.Scripts.Invoke(cmd.Context(), mirra.InvokeScriptParams{
				ScriptID: args[0],
				Payload:  p,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&payload, "payload", "", "JSON payload passed to the script")
	return cmd
}
