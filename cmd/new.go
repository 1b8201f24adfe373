package cmd

import (
	"fmt"

	"github.com/skit-sh/skit/config"
	"github.com/skit-sh/skit/internal/pipeline"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [ModuleName]",
		Short: "Scaffold a new script",
		Long:  "Create a new script source from the starter template together with its placeholder wrapper",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNew,
	}

	cmd.Flags().String("name", "", "Display name shown by the host")
	cmd.Flags().String("description", "", "One-line description shown by the host")
	cmd.Flags().String("shortcut", "", "Global keyboard shortcut")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	if err := handleWorkDir(); err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	shortcut, _ := cmd.Flags().GetString("shortcut")

	var module string
	if len(args) > 0 {
		module = args[0]
	} else {
		prompt := &survey.Input{
			Message: "Module name:",
			Default: "MyScript",
		}
		if err := survey.AskOne(prompt, &module, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	// Ask for the display metadata when none was given as flags
	if name == "" && description == "" && shortcut == "" {
		questions := []*survey.Question{
			{
				Name:   "name",
				Prompt: &survey.Input{Message: "Script name:", Default: module},
			},
			{
				Name:   "description",
				Prompt: &survey.Input{Message: "Description (optional):"},
			},
			{
				Name:   "shortcut",
				Prompt: &survey.Input{Message: "Shortcut (optional):"},
			},
		}

		answers := struct {
			Name        string
			Description string
			Shortcut    string
		}{}

		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}
		name = answers.Name
		description = answers.Description
		shortcut = answers.Shortcut
	}

	cfg, err := config.LoadConfigWithDefaults()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	orchestrator := pipeline.NewOrchestrator(cfg, nil, false)
	if err := orchestrator.Scaffold(module, pipeline.ScriptMetadata{
		Name:        name,
		Description: description,
		Shortcut:    shortcut,
	}); err != nil {
		return err
	}

	fmt.Printf("\n🎉 Created %s successfully!\n\n", orchestrator.SourcePath(module))
	fmt.Printf("Next steps:\n")
	fmt.Printf("  edit %s\n", orchestrator.SourcePath(module))
	fmt.Printf("  skit build %s\n\n", module)

	return nil
}
