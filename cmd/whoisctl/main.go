/*
 * @Date: 2025-06-15 16:22:14
 * @Description: whoisctl 命令行驱动
 */
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"whoisgate/pkg/logger"
	"whoisgate/registry"
	"whoisgate/services"
	"whoisgate/types"
)

var (
	flagServer  string
	flagTimeout time.Duration
	flagRate    float64
	flagNoColor bool

	statusFree    = color.New(color.FgGreen)
	statusTaken   = color.New(color.FgRed)
	statusUnknown = color.New(color.FgYellow)
	errColor      = color.New(color.FgRed, color.Bold)
)

// newChecker 装配CLI用的核心组件，无Redis缓存
func newChecker() *services.Checker {
	client := services.NewQueryClient(flagTimeout)
	if flagRate > 0 {
		client.SetPacing(flagRate, 1)
	}

	reg := registry.New()
	return services.NewChecker(services.NewResolver(reg), client, services.NewClassifier(), nil)
}

func printItem(item types.BatchItem) bool {
	if item.Error != "" {
		errColor.Fprintf(os.Stderr, "%s: error: %s\n", item.Domain, item.Error)
		return false
	}

	var painter *color.Color
	switch item.Status {
	case "free":
		painter = statusFree
	case "taken":
		painter = statusTaken
	default:
		painter = statusUnknown
	}
	fmt.Printf("%s: %s\n", item.Domain, painter.Sprint(item.Status))
	return true
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <domain>...",
		Short: "检查域名是否可注册（free/taken/unknown）",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := newChecker()
			opts := services.CheckOptions{ServerOverride: flagServer}

			failed := 0
			for _, domain := range args {
				item := checker.CheckOne(cmd.Context(), domain, opts)
				if !printItem(item) {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d domains failed", failed, len(args))
			}
			return nil
		},
	}
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <domain>",
		Short: "打印域名的原始WHOIS响应",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := newChecker()

			result, err := checker.Lookup(cmd.Context(), args[0], services.CheckOptions{ServerOverride: flagServer})
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "; server: %s\n", result.Server)
			fmt.Println(result.Response)
			return nil
		},
	}
}

func newTLDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tlds",
		Short: "列出内置注册表的全部TLD及其WHOIS服务器",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New()
			for _, suffix := range reg.Suffixes() {
				server, _ := reg.Lookup(suffix)
				if server == "" {
					server = "-"
				}
				fmt.Printf("%-12s %s\n", suffix, server)
			}
			return nil
		},
	}
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "按文件逐行检查域名（#开头的行跳过）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			var domains []string
			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				domains = append(domains, line)
			}
			if err := scanner.Err(); err != nil {
				return err
			}
			if len(domains) == 0 {
				return fmt.Errorf("no domains in %s", args[0])
			}

			checker := newChecker()
			opts := services.CheckOptions{ServerOverride: flagServer}

			// 严格按输入顺序逐个查询，逐项隔离错误
			failed := 0
			for _, domain := range domains {
				item := checker.CheckOne(cmd.Context(), domain, opts)
				if !printItem(item) {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d domains failed", failed, len(domains))
			}
			return nil
		},
	}
}

func main() {
	logger.InitNop()

	root := &cobra.Command{
		Use:           "whoisctl",
		Short:         "whoisctl - WHOIS域名可用性检查工具",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVar(&flagServer, "server", "", "直接指定WHOIS服务器，跳过TLD解析")
	root.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "单次查询超时")
	root.PersistentFlags().Float64Var(&flagRate, "rate", 0, "出站查询限速（每秒查询数，0为不限）")
	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "禁用彩色输出")

	root.AddCommand(newCheckCmd(), newLookupCmd(), newTLDsCmd(), newBatchCmd())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		errColor.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
