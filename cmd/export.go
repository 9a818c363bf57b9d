package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fyerfyer/doc-summary-system/internal/models"
	"github.com/spf13/cobra"
)

// export命令的参数
var (
	exportFormat string // 导出格式
	exportOutput string // 输出文件路径
)

// exportCmd 导出摘要记录
var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved summary as txt or json",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "txt", "export format (txt/json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write output to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	id, err := parseSummaryID(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	service, err := buildService(cfg, logger)
	if err != nil {
		return err
	}

	content, err := service.ExportSummary(id, exportFormat)
	if err != nil {
		if errors.Is(err, models.ErrSummaryNotFound) {
			return fmt.Errorf("summary %d not found", id)
		}
		return err
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		cmd.Printf("Exported summary %d to %s\n", id, exportOutput)
		return nil
	}

	cmd.Println(content)
	return nil
}
