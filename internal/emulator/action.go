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

// Package emulator controls the Windows Azure Storage Emulator through its
// command-line executable and interprets its console output.
// emulator 包通过命令行可执行文件控制 Windows Azure 存储模拟器，
// 并解释其控制台输出。
//
// This package provides:
// 此包提供：
// - The five emulator actions and their argument tokens / 五个模拟器操作及其参数令牌
// - Exit-code and console-output interpretation / 退出码和控制台输出解释
// - The sticky per-session value cache / 粘性的会话级值缓存
// - The Controller entry points (RunStatus, RunStart, ...) / Controller 入口点
package emulator

// Action identifies one emulator operation
// Action 标识一个模拟器操作
type Action string

const (
	// ActionUnknown is a sentinel and must never reach execution
	// ActionUnknown 是哨兵值，绝不能进入执行
	ActionUnknown Action = "unknown"

	// ActionStatus queries the emulator state
	// ActionStatus 查询模拟器状态
	ActionStatus Action = "status"

	// ActionStart starts the emulator
	// ActionStart 启动模拟器
	ActionStart Action = "start"

	// ActionStop stops the emulator
	// ActionStop 停止模拟器
	ActionStop Action = "stop"

	// ActionClear wipes the emulator's stored data
	// ActionClear 清除模拟器存储的数据
	ActionClear Action = "clear"

	// ActionInit initializes the emulator's backing store
	// ActionInit 初始化模拟器的后备存储
	ActionInit Action = "init"
)

// Actions lists every executable action, in the emulator's documented order
// Actions 按模拟器文档顺序列出每个可执行操作
var Actions = []Action{ActionStatus, ActionStart, ActionStop, ActionClear, ActionInit}

// Token returns the command-line argument token for the action
// Token 返回操作的命令行参数令牌
func (a Action) Token() string {
	return string(a)
}

// Valid reports whether the action may be executed
// Valid 报告操作是否可以被执行
func (a Action) Valid() bool {
	switch a {
	case ActionStatus, ActionStart, ActionStop, ActionClear, ActionInit:
		return true
	}
	return false
}

// String returns the action name
// String 返回操作名称
func (a Action) String() string {
	if !a.Valid() {
		return string(ActionUnknown)
	}
	return string(a)
}
