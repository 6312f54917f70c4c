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

// RunningState is the tri-state running flag reported by one invocation
// RunningState 是单次调用报告的三态运行标志
type RunningState string

const (
	// RunningUnknown indicates the invocation did not report a usable state
	// RunningUnknown 表示调用未报告可用状态
	RunningUnknown RunningState = "unknown"

	// RunningTrue indicates the emulator is running
	// RunningTrue 表示模拟器正在运行
	RunningTrue RunningState = "running"

	// RunningFalse indicates the emulator is stopped
	// RunningFalse 表示模拟器已停止
	RunningFalse RunningState = "stopped"
)

// Status is the immutable snapshot produced by one emulator invocation.
// It is constructed fresh per invocation and never mutated afterwards.
// Status 是单次模拟器调用产生的不可变快照。
// 它在每次调用时重新构建，此后不再变更。
type Status struct {
	// Action is the operation this snapshot reports on
	// Action 是此快照报告的操作
	Action Action `json:"action" yaml:"action"`

	// Installed indicates the emulator executable was found
	// Installed 表示找到了模拟器可执行文件
	Installed bool `json:"installed" yaml:"installed"`

	// Success indicates the operation completed successfully
	// Success 表示操作成功完成
	Success bool `json:"success" yaml:"success"`

	// Running is the running state found by this invocation only;
	// it is never carried over from earlier invocations
	// Running 是仅由本次调用发现的运行状态；绝不从先前的调用延续
	Running RunningState `json:"running" yaml:"running"`

	// Version is the emulator version, sticky across the session
	// Version 是模拟器版本，在会话中具有粘性
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// BlobEndpoint is the blob service URL, sticky across the session
	// BlobEndpoint 是 blob 服务 URL，在会话中具有粘性
	BlobEndpoint string `json:"blob_endpoint,omitempty" yaml:"blob_endpoint,omitempty"`

	// QueueEndpoint is the queue service URL, sticky across the session
	// QueueEndpoint 是队列服务 URL，在会话中具有粘性
	QueueEndpoint string `json:"queue_endpoint,omitempty" yaml:"queue_endpoint,omitempty"`

	// TableEndpoint is the table service URL, sticky across the session
	// TableEndpoint 是表服务 URL，在会话中具有粘性
	TableEndpoint string `json:"table_endpoint,omitempty" yaml:"table_endpoint,omitempty"`

	// Output is the raw captured console text
	// Output 是捕获的原始控制台文本
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Error is the failure description; set only when Success is false
	// Error 是失败描述；仅在 Success 为 false 时设置
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Warning is the accumulated recoverable-issue description; it may
	// coexist with Success
	// Warning 是累积的可恢复问题描述；可以与 Success 共存
	Warning string `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// Session carries the sticky values across invocations. Once a value is
// discovered it persists until overwritten by newly parsed data; it is
// never cleared. The running state is intentionally absent: it must only
// ever reflect the most recent invocation.
// Session 在多次调用之间携带粘性值。值一旦被发现就持续存在，直到被新解析
// 的数据覆盖；永不清除。运行状态被有意排除：它只能反映最近一次调用。
type Session struct {
	// Version is the last-known emulator version
	// Version 是最后已知的模拟器版本
	Version string `json:"version,omitempty"`

	// BlobEndpoint is the last-known blob service URL
	// BlobEndpoint 是最后已知的 blob 服务 URL
	BlobEndpoint string `json:"blob_endpoint,omitempty"`

	// QueueEndpoint is the last-known queue service URL
	// QueueEndpoint 是最后已知的队列服务 URL
	QueueEndpoint string `json:"queue_endpoint,omitempty"`

	// TableEndpoint is the last-known table service URL
	// TableEndpoint 是最后已知的表服务 URL
	TableEndpoint string `json:"table_endpoint,omitempty"`
}
