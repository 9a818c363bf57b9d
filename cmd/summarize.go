package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fyerfyer/doc-summary-system/internal/document"
	"github.com/fyerfyer/doc-summary-system/internal/services"
	"github.com/spf13/cobra"
)

// summarize命令的参数
var (
	summarizeText      string // 直接传入的文本
	summarizeMode      string // 摘要模式
	summarizeLength    string // 长度档位
	summarizeMaxPoints int    // 关键要点数量
	summarizeSave      bool   // 是否保存结果
	summarizeAPIKey    string // 在线模式API密钥
	summarizeOutput    string // 结果报告输出路径
)

// summarizeCmd 生成摘要命令
var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a document or text",
	Long: `Generate a summary and key points for a document.

Pass a file path (txt, md, pdf, docx) as the argument, or provide
raw text with --text. Use --save to persist the result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeText, "text", "t", "", "raw text to summarize instead of a file")
	summarizeCmd.Flags().StringVarP(&summarizeMode, "mode", "m", "", "summarization mode (local/online)")
	summarizeCmd.Flags().StringVarP(&summarizeLength, "length", "l", "", "summary length (short/medium/long)")
	summarizeCmd.Flags().IntVarP(&summarizeMaxPoints, "max-points", "p", 0, "maximum number of key points")
	summarizeCmd.Flags().BoolVarP(&summarizeSave, "save", "s", false, "save the result to the database")
	summarizeCmd.Flags().StringVar(&summarizeAPIKey, "api-key", "", "API key for online mode (defaults to config/env)")
	summarizeCmd.Flags().StringVarP(&summarizeOutput, "output", "o", "", "write the report to a file as well")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	req := services.SummarizeRequest{
		Mode:      summarizeMode,
		Length:    summarizeLength,
		MaxPoints: summarizeMaxPoints,
		Save:      summarizeSave,
		APIKey:    summarizeAPIKey,
	}

	// 未显式指定时使用配置中的默认值
	if req.Mode == "" {
		req.Mode = cfg.Summarizer.DefaultMode
	}
	if req.Length == "" {
		req.Length = cfg.Summarizer.DefaultLength
	}
	if req.MaxPoints <= 0 {
		req.MaxPoints = cfg.Summarizer.MaxPoints
	}
	if req.APIKey == "" {
		req.APIKey = cfg.LLM.APIKey
	}

	// 输入来源：文件参数优先，其次--text
	switch {
	case len(args) == 1:
		filePath := args[0]
		if _, err := os.Stat(filePath); err != nil {
			return fmt.Errorf("cannot read file %s: %w", filePath, err)
		}
		text, contentType, err := document.Parse(filePath)
		if err != nil {
			return fmt.Errorf("failed to parse document: %w", err)
		}
		req.Text = text
		req.Filename = filepath.Base(filePath)
		req.FileType = string(contentType)
	case summarizeText != "":
		req.Text = summarizeText
	default:
		return fmt.Errorf("provide a file path or --text")
	}

	service, err := buildService(cfg, logger)
	if err != nil {
		return err
	}

	result, err := service.Summarize(cmd.Context(), req)
	if err != nil {
		return err
	}

	printSummary(cmd, result)

	if summarizeOutput != "" {
		if err := os.WriteFile(summarizeOutput, []byte(formatReport(result)), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		cmd.Printf("Report written to %s\n", summarizeOutput)
	}

	return nil
}

// formatReport 生成写入文件的报告文本
func formatReport(result *services.SummarizeResult) string {
	rule := strings.Repeat("=", 50)

	lines := []string{
		fmt.Sprintf("Document: %s", result.Filename),
		fmt.Sprintf("Mode: %s | Length: %s", result.Mode, result.Length),
		"",
		rule,
		"SUMMARY",
		rule,
		result.Summary,
		"",
		rule,
		"KEY POINTS",
		rule,
	}
	for i, point := range result.KeyPoints {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, point))
	}

	return strings.Join(lines, "\n") + "\n"
}

// printSummary 输出摘要结果
func printSummary(cmd *cobra.Command, result *services.SummarizeResult) {
	rule := strings.Repeat("=", 50)

	cmd.Printf("Document: %s (%s)\n", result.Filename, result.FileType)
	cmd.Printf("Mode: %s | Length: %s\n\n", result.Mode, result.Length)

	cmd.Println(rule)
	cmd.Println("SUMMARY")
	cmd.Println(rule)
	cmd.Println(result.Summary)
	cmd.Println()

	cmd.Println(rule)
	cmd.Println("KEY POINTS")
	cmd.Println(rule)
	for i, point := range result.KeyPoints {
		cmd.Printf("%d. %s\n", i+1, point)
	}
	cmd.Println()

	cmd.Printf("Original length: %d chars, summary length: %d chars\n",
		result.OriginalLength, result.SummaryLength)
	if result.SavedID > 0 {
		cmd.Printf("Saved with ID: %d\n", result.SavedID)
	}
}
