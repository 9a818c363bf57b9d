package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// delete命令的参数
var deleteYes bool // 跳过删除确认

// deleteCmd 删除摘要记录
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseSummaryID(args[0])
	if err != nil {
		return err
	}

	if !deleteYes {
		cmd.Printf("Delete summary %d? [y/N]: ", id)
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
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

	deleted, err := service.DeleteSummary(id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("summary %d not found", id)
	}

	cmd.Printf("Deleted summary %d\n", id)
	return nil
}
