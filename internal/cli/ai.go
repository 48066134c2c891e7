package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	mirra "github.com/mirra-ai/mirra-go"
)

func aiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Chat and decision endpoints",
	}
	cmd.AddCommand(aiChatCmd())
	cmd.AddCommand(aiDecideCmd())
	return cmd
}

func aiChatCmd() *cobra.Command {
	var model, system string
	var temperature float64
	var maxTokens int
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Send one chat message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			var messages []mirra.ChatMessage
			if system != "" {
				messages = append(messages, mirra.ChatMessage{Role: mirra.RoleSystem, Content: system})
			}
			messages = append(messages, mirra.ChatMessage{Role: mirra.RoleUser, Content: strings.Join(args, " ")})

			req := mirra.ChatRequest{Messages: messages}
			if model != "" {
				req.Model = &model
			}
			if cmd.Flags().Changed("temperature") {
				req.Temperature = &temperature
			}
			if maxTokens > 0 {
				req.MaxTokens = &maxTokens
			}

			resp, err := client.AI.Chat(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "model override")
	cmd.Flags().StringVar(&system, "system", "", "system prompt")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "sampling temperature")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "maximum output tokens")
	return cmd
}

func aiDecideCmd() *cobra.Command {
	var prompt, model string
	var options []string
	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Ask the AI to pick one of the given options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(options) < 2 {
				return fmt.Errorf("at least two --option values are required")
			}
			decisionOptions := make([]mirra.DecisionOption, 0, len(options))
			for _, opt := range options {
				id, label, found := strings.Cut(opt, "=")
				if !found {
					label = id
				}
				decisionOptions = append(decisionOptions, mirra.DecisionOption{ID: id, Label: label})
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			req := mirra.DecideRequest{
				Prompt:  prompt,
				Options: decisionOptions,
			}
			if model != "" {
				req.Model = &model
			}
			resp, err := client.AI.Decide(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "", "decision prompt (required)")
	cmd.Flags().StringVar(&model, "model", "", "model override")
	cmd.Flags().StringArrayVar(&options, "option", nil, "option as id=label (repeatable)")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}
