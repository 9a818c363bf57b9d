package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fyerfyer/doc-summary-system/internal/models"
	"github.com/spf13/cobra"
)

// showCmd 查看单条摘要记录
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// parseSummaryID 将命令行参数解析为记录ID
func parseSummaryID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid summary id: %s", arg)
	}
	return uint(id), nil
}

func runShow(cmd *cobra.Command, args []string) error {
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

	record, err := service.GetSummary(id)
	if err != nil {
		if errors.Is(err, models.ErrSummaryNotFound) {
			return fmt.Errorf("summary %d not found", id)
		}
		return err
	}

	rule := strings.Repeat("=", 50)

	cmd.Printf("ID: %d\n", record.ID)
	cmd.Printf("Document: %s (%s)\n", record.Filename, record.FileType)
	cmd.Printf("Date: %s\n", record.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Mode: %s | Length: %s\n\n", record.Mode, record.Length)

	cmd.Println(rule)
	cmd.Println("SUMMARY")
	cmd.Println(rule)
	cmd.Println(record.Summary)
	cmd.Println()

	cmd.Println(rule)
	cmd.Println("KEY POINTS")
	cmd.Println(rule)
	for i, point := range record.GetKeyPoints() {
		cmd.Printf("%d. %s\n", i+1, point)
	}

	return nil
}
