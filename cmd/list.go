package cmd

import (
	"github.com/spf13/cobra"
)

// list命令的参数
var listLimit int

// listCmd 列出已保存的摘要
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved summaries",
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 50, "maximum number of records to show")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	service, err := buildService(cfg, logger)
	if err != nil {
		return err
	}

	items, err := service.ListSummaries(listLimit)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		cmd.Println("No saved summaries.")
		return nil
	}

	cmd.Printf("%-6s %-30s %-8s %-8s %-10s %s\n", "ID", "FILENAME", "MODE", "LENGTH", "TYPE", "CREATED")
	for _, item := range items {
		name := item.Filename
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		cmd.Printf("%-6d %-30s %-8s %-8s %-10s %s\n",
			item.ID, name, item.Mode, item.Length, item.FileType,
			item.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
