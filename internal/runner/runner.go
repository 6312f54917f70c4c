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

// Package runner provides single-shot child-process execution for emulatorctl.
// runner 包为 emulatorctl 提供单次子进程执行功能。
//
// This package provides:
// 此包提供：
// - Spawning the emulator executable with one argument token / 以单个参数令牌启动模拟器可执行文件
// - Combined stdout+stderr capture via concurrent readers / 通过并发读取器捕获合并的标准输出和标准错误
// - Wall-clock timeout with forced termination / 带强制终止的墙钟超时
// - Resource release on every exit path / 在每条退出路径上释放资源
package runner

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout is the default wall-clock limit for one invocation
// DefaultTimeout 是单次调用的默认墙钟时间限制
const DefaultTimeout = 30 * time.Second

// Request contains the parameters for one emulator invocation
// Request 包含单次模拟器调用的参数
type Request struct {
	// ExePath is the path to the emulator executable
	// ExePath 是模拟器可执行文件的路径
	ExePath string `json:"exe_path"`

	// WorkDir is the working directory for the child process
	// WorkDir 是子进程的工作目录
	WorkDir string `json:"work_dir"`

	// Arg is the single command-line argument token
	// Arg 是单个命令行参数令牌
	Arg string `json:"arg"`

	// Timeout is the wall-clock limit (DefaultTimeout when zero)
	// Timeout 是墙钟时间限制（为零时使用 DefaultTimeout）
	Timeout time.Duration `json:"timeout"`
}

// Result contains the outcome of one emulator invocation
// Result 包含单次模拟器调用的结果
type Result struct {
	// ExitCode is the process exit code; may be negative
	// ExitCode 是进程退出码；可能为负数
	ExitCode int `json:"exit_code"`

	// Output is the combined stdout+stderr text
	// Output 是合并的标准输出和标准错误文本
	Output string `json:"output"`

	// TimedOut indicates the process was killed after the timeout
	// TimedOut 表示进程在超时后被杀死
	TimedOut bool `json:"timed_out"`
}

// Runner executes the emulator executable one invocation at a time
// Runner 逐次执行模拟器可执行文件
type Runner struct {
	logger *zap.Logger
}

// New creates a new Runner instance
// New 创建一个新的 Runner 实例
func New(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// outputBuffer is an append-only text buffer safe for concurrent writers.
// The buffer is only read after both writers have completed.
// outputBuffer 是对并发写入者安全的仅追加文本缓冲区。
// 缓冲区仅在两个写入者都完成后才被读取。
type outputBuffer struct {
	mu  sync.Mutex
	buf []byte
}

// appendLine appends one line of child output
// appendLine 追加一行子进程输出
func (b *outputBuffer) appendLine(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, line...)
	b.buf = append(b.buf, '\n')
}

// String returns the accumulated text
// String 返回累积的文本
func (b *outputBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

// Execute runs the executable with the single argument token and waits for
// exit or timeout. Structural spawn failures are returned as errors; exit
// codes and timeouts are encoded in the Result.
// Execute 以单个参数令牌运行可执行文件并等待退出或超时。结构性的启动失败
// 作为错误返回；退出码和超时编码在 Result 中。
func (r *Runner) Execute(req Request) (Result, error) {
	timeout := req.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	cmd := exec.Command(req.ExePath, req.Arg)
	cmd.Dir = req.WorkDir
	// No interactive input is ever provided / 从不提供交互式输入
	cmd.Stdin = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	r.logger.Debug("starting emulator process",
		zap.String("exe", req.ExePath),
		zap.String("arg", req.Arg),
		zap.String("work_dir", req.WorkDir),
		zap.Duration("timeout", timeout))

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("failed to start %s: %w", req.ExePath, err)
	}

	// Readers must start before any wait so a full pipe buffer can never
	// stall the child.
	// 读取器必须在任何等待之前启动，这样满的管道缓冲区就永远不会使子进程停滞。
	buf := &outputBuffer{}
	var readers sync.WaitGroup
	readers.Add(2)
	go drain(&readers, stdout, buf)
	go drain(&readers, stderr, buf)

	// Wait must not run before both readers have drained: os/exec closes the
	// pipes on Wait, and the buffer is not read until the readers are done.
	// Wait 不能在两个读取器排空之前运行：os/exec 在 Wait 时关闭管道，
	// 缓冲区在读取器完成之前不会被读取。
	done := make(chan error, 1)
	go func() {
		readers.Wait()
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case waitErr := <-done:
		result := Result{
			ExitCode: exitCode(waitErr),
			Output:   buf.String(),
		}
		r.logger.Debug("emulator process exited",
			zap.Int("exit_code", result.ExitCode),
			zap.Int("output_bytes", len(result.Output)))
		return result, nil

	case <-timer.C:
		// The child may have exited right at the deadline; a completed
		// process must never be reported as timed out.
		// 子进程可能恰好在截止时刻退出；已完成的进程绝不能被报告为超时。
		select {
		case waitErr := <-done:
			result := Result{
				ExitCode: exitCode(waitErr),
				Output:   buf.String(),
			}
			r.logger.Debug("emulator process exited at the deadline",
				zap.Int("exit_code", result.ExitCode),
				zap.Int("output_bytes", len(result.Output)))
			return result, nil
		default:
		}

		// Forced termination; the exit code is meaningless after a kill
		// 强制终止；杀死后退出码没有意义
		if killErr := cmd.Process.Kill(); killErr != nil {
			r.logger.Warn("failed to kill timed-out process",
				zap.Int("pid", cmd.Process.Pid),
				zap.Error(killErr))
		}
		// Drain the wait goroutine so the process entry is reaped
		// 排空等待 goroutine 以回收进程条目
		<-done
		r.logger.Warn("emulator process timed out",
			zap.String("exe", req.ExePath),
			zap.String("arg", req.Arg),
			zap.Duration("timeout", timeout),
			zap.String("partial_output", buf.String()))
		return Result{TimedOut: true, Output: buf.String()}, nil
	}
}

// drain copies one child stream into the shared buffer, line by line.
// Lines are read without a length cap so an oversized line is never
// silently truncated.
// drain 将一个子进程流逐行复制到共享缓冲区。
// 读取行时没有长度上限，因此超长的行永远不会被静默截断。
func drain(wg *sync.WaitGroup, stream io.Reader, buf *outputBuffer) {
	defer wg.Done()
	reader := bufio.NewReader(stream)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			// A partial line before a broken pipe (e.g. after a kill) is
			// still captured.
			// 管道断开前的不完整行（例如在杀死之后）仍会被捕获。
			buf.appendLine(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			return
		}
	}
}

// exitCode maps a Wait error to the process exit code
// exitCode 将 Wait 错误映射为进程退出码
func exitCode(waitErr error) int {
	if waitErr == nil {
		return 0
	}
	if exitErr, ok := waitErr.(*exec.ExitError); ok {
		// On Windows the emulator reports outcomes as negative codes,
		// which arrive here unchanged.
		// 在 Windows 上，模拟器以负数码报告结果，这些码原样到达这里。
		return exitErr.ExitCode()
	}
	// Wait failed for a non-exit reason; report as a generic failure code
	// Wait 因非退出原因失败；报告为通用失败码
	return -1
}
