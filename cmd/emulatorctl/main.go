/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package main is the entry point for the emulatorctl command line tool.
// main 包是 emulatorctl 命令行工具的入口点。
//
// emulatorctl drives a locally installed Windows Azure Storage Emulator:
// emulatorctl 驱动本地安装的 Windows Azure 存储模拟器：
// - Locates the emulator executable / 定位模拟器可执行文件
// - Runs status, start, stop, clear and init / 执行 status、start、stop、clear 和 init
// - Interprets exit codes and console output / 解释退出码和控制台输出
// - Renders the result as text, JSON or YAML / 以文本、JSON 或 YAML 呈现结果
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/azuredevkit/emulatorctl/internal/config"
	"github.com/azuredevkit/emulatorctl/internal/emulator"
	"github.com/azuredevkit/emulatorctl/internal/locator"
	"github.com/azuredevkit/emulatorctl/internal/logging"
	"github.com/azuredevkit/emulatorctl/internal/runner"
)

// Version information, set at build time
// 版本信息，在构建时设置
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// errActionFailed marks an invocation whose Status was already rendered;
// main only needs to translate it into a nonzero process exit.
// errActionFailed 标记其 Status 已被呈现的调用；main 只需将其转换为
// 非零进程退出码。
var errActionFailed = errors.New("emulator action failed")

// Command line flags
// 命令行标志
var (
	// configFile is the path to the configuration file
	// configFile 是配置文件的路径
	configFile string

	// timeoutFlag overrides the configured per-invocation timeout
	// timeoutFlag 覆盖配置的单次调用超时
	timeoutFlag time.Duration

	// outputFormat selects the rendering: text, json or yaml
	// outputFormat 选择呈现方式：text、json 或 yaml
	outputFormat string
)

// rootCmd is the root command for the emulatorctl CLI
// rootCmd 是 emulatorctl CLI 的根命令
var rootCmd = &cobra.Command{
	Use:   "emulatorctl",
	Short: "emulatorctl - Control the Windows Azure Storage Emulator",
	Long: `emulatorctl controls a locally installed Windows Azure Storage Emulator.
emulatorctl 控制本地安装的 Windows Azure 存储模拟器。

It locates the emulator executable, runs one management action per
invocation and interprets the emulator's console output:
它定位模拟器可执行文件，每次调用执行一个管理操作，并解释模拟器的控制台输出：
- Query the running state and service endpoints / 查询运行状态和服务端点
- Start, stop, clear and initialize the emulator / 启动、停止、清除和初始化模拟器
- Exit nonzero when the action fails / 操作失败时以非零码退出`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// versionCmd shows version information
// versionCmd 显示版本信息
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information / 打印版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("emulatorctl\n")
		fmt.Printf("  Version:    %s\n", Version)
		fmt.Printf("  Git Commit: %s\n", GitCommit)
		fmt.Printf("  Build Time: %s\n", BuildTime)
		fmt.Printf("  Go Version: %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: emulatorctl.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "per-invocation timeout, overrides the configured value")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json or yaml")

	// One subcommand per emulator action
	// 每个模拟器操作一个子命令
	rootCmd.AddCommand(
		newActionCommand(emulator.ActionStatus, "Query the emulator state and endpoints / 查询模拟器状态和端点"),
		newActionCommand(emulator.ActionStart, "Start the emulator / 启动模拟器"),
		newActionCommand(emulator.ActionStop, "Stop the emulator / 停止模拟器"),
		newActionCommand(emulator.ActionClear, "Wipe the emulator's stored data / 清除模拟器存储的数据"),
		newActionCommand(emulator.ActionInit, "Initialize the emulator's backing store / 初始化模拟器的后备存储"),
		newEnsureCommand("ensure-started", "Start the emulator unless it is already running / 除非已在运行，否则启动模拟器",
			func(ctrl *emulator.Controller) emulator.Status { return ctrl.EnsureStarted() }),
		newEnsureCommand("ensure-stopped", "Stop the emulator unless it is already stopped / 除非已停止，否则停止模拟器",
			func(ctrl *emulator.Controller) emulator.Status { return ctrl.EnsureStopped() }),
		versionCmd,
	)
}

// newActionCommand builds the subcommand for one emulator action
// newActionCommand 为一个模拟器操作构建子命令
func newActionCommand(action emulator.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action.Token(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithController(func(ctrl *emulator.Controller) emulator.Status {
				return ctrl.Run(action)
			})
		},
	}
}

// newEnsureCommand builds a check-then-act subcommand
// newEnsureCommand 构建“检查后执行”子命令
func newEnsureCommand(use, short string, run func(*emulator.Controller) emulator.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithController(run)
		},
	}
}

// runWithController wires config, logging, locator and runner together,
// executes one action and renders its Status. A failed Status becomes a
// nonzero process exit, never an error message of its own.
// runWithController 将配置、日志、定位器和运行器连接起来，执行一个操作并
// 呈现其 Status。失败的 Status 转换为非零进程退出码，而不是单独的错误消息。
func runWithController(run func(*emulator.Controller) emulator.Status) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if timeoutFlag > 0 {
		cfg.Emulator.Timeout = timeoutFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("starting invocation",
		zap.String("config", cfg.String()),
		zap.String("output", outputFormat))

	loc := locator.New(cfg.Emulator, logger)
	ctrl := emulator.NewController(loc, runner.New(logger), cfg.Emulator.Timeout, logger)

	st := run(ctrl)

	if err := render(os.Stdout, st, outputFormat); err != nil {
		return err
	}
	if !st.Success {
		return errActionFailed
	}
	return nil
}

// render writes one Status in the selected format
// render 以选定的格式写出一个 Status
func render(w io.Writer, st emulator.Status, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(st)
	case "text":
		renderText(w, st)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s (must be text, json or yaml)", format)
	}
}

// renderText writes the human-readable rendering
// renderText 写出人类可读的呈现
func renderText(w io.Writer, st emulator.Status) {
	green := color.New(color.FgGreen).FprintfFunc()
	red := color.New(color.FgRed).FprintfFunc()
	yellow := color.New(color.FgYellow).FprintfFunc()

	if st.Success {
		green(w, "✓ %s succeeded\n", st.Action)
	} else {
		red(w, "✗ %s failed\n", st.Action)
	}

	fmt.Fprintf(w, "  Installed: %v\n", st.Installed)
	fmt.Fprintf(w, "  Running:   %s\n", st.Running)
	if st.Version != "" {
		fmt.Fprintf(w, "  Version:   %s\n", st.Version)
	}
	if st.BlobEndpoint != "" {
		fmt.Fprintf(w, "  Blob:      %s\n", st.BlobEndpoint)
	}
	if st.QueueEndpoint != "" {
		fmt.Fprintf(w, "  Queue:     %s\n", st.QueueEndpoint)
	}
	if st.TableEndpoint != "" {
		fmt.Fprintf(w, "  Table:     %s\n", st.TableEndpoint)
	}
	if st.Warning != "" {
		yellow(w, "  Warning:   %s\n", st.Warning)
	}
	if st.Error != "" {
		red(w, "  Error:     %s\n", st.Error)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errActionFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
