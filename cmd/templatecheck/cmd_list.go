package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qcodegen/templatecheck/internal/projectconfig"
)

var (
	listRegistryPath string
	listFormat       string
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered templates by category",
		Args:  cobra.NoArgs,
		RunE:  listCommandE,
	}

	cmd.Flags().StringVar(&listRegistryPath, "registry", "", "Registry YAML file (default: built-in template registry)")
	cmd.Flags().StringVar(&listFormat, "format", "text", "Output format: text, json")

	return cmd
}

func listCommandE(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	// Same registry selection as the run command, so both subcommands
	// describe the same suite.
	cfg, err := projectconfig.Load(cwd)
	if err != nil {
		return err
	}
	if listRegistryPath != "" {
		cfg.Registry = listRegistryPath
	}

	reg, err := loadRegistry(cfg, cwd)
	if err != nil {
		return err
	}

	switch listFormat {
	case "json":
		data, err := json.MarshalIndent(reg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "text":
		for _, cat := range reg.Categories {
			fmt.Println(infoStyle.Render(cat.Name))
			for _, tpl := range cat.Templates {
				fmt.Printf("  %s\n", tpl)
			}
			fmt.Println()
		}
		fmt.Printf("%d template(s) in %d categories\n", reg.TemplateCount(), len(reg.Categories))
	default:
		return fmt.Errorf("unknown output format: %s (supported: text, json)", listFormat)
	}

	return nil
}
