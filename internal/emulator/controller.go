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

package emulator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/azuredevkit/emulatorctl/internal/locator"
	"github.com/azuredevkit/emulatorctl/internal/runner"
)

// ProcessRunner executes one emulator invocation
// ProcessRunner 执行一次模拟器调用
type ProcessRunner interface {
	Execute(req runner.Request) (runner.Result, error)
}

// InstallLocator resolves the local emulator installation
// InstallLocator 解析本地模拟器安装
type InstallLocator interface {
	Resolve() (locator.Install, error)
}

// Controller drives the storage emulator through single-shot synchronous
// invocations. It is not safe for concurrent use: the session cache is
// only ever touched between synchronous invocations.
// Controller 通过单次同步调用驱动存储模拟器。它不是并发安全的：
// 会话缓存只在同步调用之间被访问。
type Controller struct {
	// locator supplies the executable path and working directory
	// locator 提供可执行文件路径和工作目录
	locator InstallLocator

	// runner executes the emulator process
	// runner 执行模拟器进程
	runner ProcessRunner

	// timeout is the wall-clock limit per invocation
	// timeout 是每次调用的墙钟时间限制
	timeout time.Duration

	// session carries the sticky values across invocations
	// session 在多次调用之间携带粘性值
	session Session

	logger *zap.Logger
}

// NewController creates a Controller with a fresh session
// NewController 创建一个带有新会话的 Controller
func NewController(loc InstallLocator, run ProcessRunner, timeout time.Duration, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout == 0 {
		timeout = runner.DefaultTimeout
	}
	return &Controller{
		locator: loc,
		runner:  run,
		timeout: timeout,
		logger:  logger,
	}
}

// Run executes one action and returns its Status snapshot. Every failure
// mode is encoded in the Status; Run never returns an error. Passing an
// invalid action is a programming error and fails fast.
// Run 执行一个操作并返回其 Status 快照。每种失败模式都编码在 Status 中；
// Run 从不返回错误。传入无效操作是编程错误，会快速失败。
func (c *Controller) Run(action Action) Status {
	if !action.Valid() {
		panic(fmt.Sprintf("emulator: action %q must never be executed", action))
	}

	// The executable presence check happens before any execution; when the
	// emulator is absent the runner is never invoked.
	// 可执行文件存在性检查在任何执行之前进行；模拟器不存在时，
	// 运行器永远不会被调用。
	install, err := c.locator.Resolve()
	if err != nil {
		c.logger.Warn("emulator not installed",
			zap.String("action", action.String()),
			zap.Error(err))
		return Status{
			Action:  action,
			Running: RunningUnknown,
			Error:   err.Error(),
		}
	}

	res, err := c.runner.Execute(runner.Request{
		ExePath: install.ExePath,
		WorkDir: install.WorkDir,
		Arg:     action.Token(),
		Timeout: c.timeout,
	})
	if err != nil {
		// Spawn failures are structural: encoded in the Status like every
		// other failure mode.
		// 启动失败是结构性的：与其他所有失败模式一样编码在 Status 中。
		c.logger.Error("emulator invocation failed",
			zap.String("action", action.String()),
			zap.Error(err))
		return Status{
			Action:    action,
			Installed: true,
			Running:   RunningUnknown,
			Error:     fmt.Sprintf("failed to run %s %s: %v", install.ExePath, action.Token(), err),
		}
	}

	st := Interpret(action, &c.session, install.ExePath, res)

	if st.Warning != "" {
		c.logger.Warn("emulator output warning",
			zap.String("action", action.String()),
			zap.String("warning", st.Warning))
	}
	if st.Error != "" {
		c.logger.Warn("emulator action failed",
			zap.String("action", action.String()),
			zap.String("error", st.Error))
	} else {
		c.logger.Info("emulator action completed",
			zap.String("action", action.String()),
			zap.String("running", string(st.Running)))
	}

	return st
}

// RunStatus queries the emulator state
// RunStatus 查询模拟器状态
func (c *Controller) RunStatus() Status { return c.Run(ActionStatus) }

// RunStart starts the emulator
// RunStart 启动模拟器
func (c *Controller) RunStart() Status { return c.Run(ActionStart) }

// RunStop stops the emulator
// RunStop 停止模拟器
func (c *Controller) RunStop() Status { return c.Run(ActionStop) }

// RunClear wipes the emulator's stored data
// RunClear 清除模拟器存储的数据
func (c *Controller) RunClear() Status { return c.Run(ActionClear) }

// RunInit initializes the emulator's backing store
// RunInit 初始化模拟器的后备存储
func (c *Controller) RunInit() Status { return c.Run(ActionInit) }

// EnsureStarted checks the current status first and only invokes start if
// the emulator is not already running. No polling is performed: this is a
// single check-then-act, and retrying is the caller's responsibility.
// EnsureStarted 先检查当前状态，仅在模拟器尚未运行时调用启动。
// 不执行轮询：这是单次“检查后执行”，重试是调用者的责任。
func (c *Controller) EnsureStarted() Status {
	st := c.RunStatus()
	if !st.Installed {
		return st
	}
	if st.Success && st.Running == RunningTrue {
		return st
	}
	return c.RunStart()
}

// EnsureStopped checks the current status first and only invokes stop if
// the emulator is not already stopped.
// EnsureStopped 先检查当前状态，仅在模拟器尚未停止时调用停止。
func (c *Controller) EnsureStopped() Status {
	st := c.RunStatus()
	if !st.Installed {
		return st
	}
	if st.Success && st.Running == RunningFalse {
		return st
	}
	return c.RunStop()
}

// SessionSnapshot returns a copy of the current sticky values
// SessionSnapshot 返回当前粘性值的副本
func (c *Controller) SessionSnapshot() Session {
	return c.session
}
