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

// Package locator resolves the local storage-emulator installation.
// locator 包解析本地存储模拟器安装。
//
// An explicit executable path from configuration wins; otherwise the
// conventional SDK install locations are probed in order. The locator only
// answers "where is the executable and which directory does it run in" —
// it never starts a process.
// 配置中的显式可执行文件路径优先；否则按顺序探测常规的 SDK 安装位置。
// 定位器只回答“可执行文件在哪里、在哪个目录中运行”——它从不启动进程。
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/azuredevkit/emulatorctl/internal/config"
)

// ErrNotInstalled indicates no emulator executable was found
// ErrNotInstalled 表示未找到模拟器可执行文件
var ErrNotInstalled = errors.New("storage emulator is not installed")

// Install describes a resolved emulator installation
// Install 描述已解析的模拟器安装
type Install struct {
	// ExePath is the absolute path to the emulator executable
	// ExePath 是模拟器可执行文件的绝对路径
	ExePath string `json:"exe_path"`

	// WorkDir is the directory emulator invocations run in
	// WorkDir 是模拟器调用运行的目录
	WorkDir string `json:"work_dir"`
}

// Locator finds the storage-emulator installation on the local machine
// Locator 在本地机器上查找存储模拟器安装
type Locator struct {
	// executable is the configured override path (may be empty)
	// executable 是配置的覆盖路径（可能为空）
	executable string

	// workingDir is the configured working directory override (may be empty)
	// workingDir 是配置的工作目录覆盖（可能为空）
	workingDir string

	// candidates are the probed install locations, in priority order
	// candidates 是按优先级顺序探测的安装位置
	candidates []string

	logger *zap.Logger
}

// New creates a Locator from the emulator configuration
// New 根据模拟器配置创建 Locator
func New(cfg config.EmulatorConfig, logger *zap.Logger) *Locator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{
		executable: cfg.Executable,
		workingDir: cfg.WorkingDir,
		candidates: defaultCandidates(),
		logger:     logger,
	}
}

// defaultCandidates returns the conventional SDK install locations
// defaultCandidates 返回常规的 SDK 安装位置
func defaultCandidates() []string {
	programFiles := os.Getenv("ProgramFiles(x86)")
	if programFiles == "" {
		programFiles = `C:\Program Files (x86)`
	}
	return []string{
		// Azure SDK 2.7+ / Azure SDK 2.7 及以上
		filepath.Join(programFiles, "Microsoft SDKs", "Azure", "Storage Emulator", "AzureStorageEmulator.exe"),
		// Older SDKs shipped under the Windows Azure name
		// 较旧的 SDK 以 Windows Azure 名称发布
		filepath.Join(programFiles, "Microsoft SDKs", "Windows Azure", "Storage Emulator", "WAStorageEmulator.exe"),
	}
}

// Resolve returns the emulator installation, or ErrNotInstalled
// Resolve 返回模拟器安装，或 ErrNotInstalled
func (l *Locator) Resolve() (Install, error) {
	// Explicit override wins and is not probed further
	// 显式覆盖优先，不再进一步探测
	if l.executable != "" {
		if !fileExists(l.executable) {
			return Install{}, fmt.Errorf("%w: executable not found at %s", ErrNotInstalled, l.executable)
		}
		return l.install(l.executable), nil
	}

	// Probe candidate locations in order / 按顺序探测候选位置
	for _, candidate := range l.candidates {
		if fileExists(candidate) {
			l.logger.Debug("found emulator executable",
				zap.String("path", candidate))
			return l.install(candidate), nil
		}
		l.logger.Debug("emulator executable not present",
			zap.String("path", candidate))
	}

	return Install{}, fmt.Errorf("%w: no executable found in %d known locations", ErrNotInstalled, len(l.candidates))
}

// IsInstalled reports whether an emulator executable is present
// IsInstalled 报告模拟器可执行文件是否存在
func (l *Locator) IsInstalled() bool {
	_, err := l.Resolve()
	return err == nil
}

// install builds the Install value for a resolved executable
// install 为已解析的可执行文件构建 Install 值
func (l *Locator) install(exePath string) Install {
	workDir := l.workingDir
	if workDir == "" {
		workDir = filepath.Dir(exePath)
	}
	return Install{ExePath: exePath, WorkDir: workDir}
}

// fileExists reports whether path exists and is a regular file
// fileExists 报告路径是否存在且为普通文件
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
