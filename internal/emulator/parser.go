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
	"net/url"
	"regexp"
	"strings"

	"github.com/azuredevkit/emulatorctl/internal/runner"
)

// Special exit codes of the emulator executable. These are the emulator's
// own undocumented contract, observed rather than specified, and may shift
// across emulator releases.
// 模拟器可执行文件的特殊退出码。这些是模拟器自身未文档化的约定，
// 来自观察而非规范，可能随模拟器版本变化。
const (
	// exitCodeAlreadyRunning is returned by a start attempt while running
	// exitCodeAlreadyRunning 在运行中尝试启动时返回
	exitCodeAlreadyRunning = -5

	// exitCodeAlreadyStopped is returned by a stop attempt while stopped
	// exitCodeAlreadyStopped 在停止状态下尝试停止时返回
	exitCodeAlreadyStopped = -6
)

// Messages surfaced in Status fields
// Status 字段中显示的消息
const (
	errTimedOut        = "timed out waiting for response"
	warnAlreadyRunning = "already running"
	warnAlreadyStopped = "already stopped"
	warningSeparator   = "; "
)

// lineRule describes one position of the emulator's fixed console schema:
// which pattern the line at that position must match and where the captured
// value goes. A non-matching line leaves its field unset for this
// invocation, falling back to the session's sticky value.
// lineRule 描述模拟器固定控制台模式的一个位置：该位置的行必须匹配哪个
// 模式，以及捕获的值放在哪里。不匹配的行使其字段在本次调用中保持未设置，
// 回退到会话的粘性值。
type lineRule struct {
	// field names the value for logs and tests
	// field 为日志和测试命名该值
	field string

	// pattern must match the whole line; the first capture group is the value
	// pattern 必须匹配整行；第一个捕获组是值
	pattern *regexp.Regexp

	// assign stores a matched value on the status and the session
	// assign 将匹配的值存储到状态和会话中
	assign func(st *Status, sess *Session, value string)
}

// outputSchema is the positional line schema of a successful invocation:
//
//	Windows Azure Storage Emulator <major>.<minor>.<build>.<revision> command line tool
//	IsRunning: <True|False>
//	BlobEndpoint: <absolute-url>
//	QueueEndpoint: <absolute-url>
//	TableEndpoint: <absolute-url>
//
// outputSchema 是成功调用的位置化行模式。
var outputSchema = []lineRule{
	{
		field:   "version",
		pattern: regexp.MustCompile(`^Windows Azure Storage Emulator (\d+\.\d+\.\d+\.\d+) command line tool$`),
		assign: func(st *Status, sess *Session, value string) {
			st.Version = value
			sess.Version = value
		},
	},
	{
		field:   "is_running",
		pattern: regexp.MustCompile(`^IsRunning: (True|False)$`),
		assign: func(st *Status, _ *Session, value string) {
			// Intentionally not sticky: stale running state must never be
			// reported as current.
			// 有意不具粘性：过时的运行状态绝不能被报告为当前状态。
			if value == "True" {
				st.Running = RunningTrue
			} else {
				st.Running = RunningFalse
			}
		},
	},
	{
		field:   "blob_endpoint",
		pattern: regexp.MustCompile(`^BlobEndpoint: (.+)$`),
		assign: func(st *Status, sess *Session, value string) {
			st.BlobEndpoint = value
			sess.BlobEndpoint = value
		},
	},
	{
		field:   "queue_endpoint",
		pattern: regexp.MustCompile(`^QueueEndpoint: (.+)$`),
		assign: func(st *Status, sess *Session, value string) {
			st.QueueEndpoint = value
			sess.QueueEndpoint = value
		},
	},
	{
		field:   "table_endpoint",
		pattern: regexp.MustCompile(`^TableEndpoint: (.+)$`),
		assign: func(st *Status, sess *Session, value string) {
			st.TableEndpoint = value
			sess.TableEndpoint = value
		},
	},
}

// Interpret folds one execution result into a Status snapshot, updating the
// session's sticky values along the way. All failure modes are encoded in
// the returned Status; Interpret never fails.
// Interpret 将一次执行结果折叠为 Status 快照，同时更新会话的粘性值。
// 所有失败模式都编码在返回的 Status 中；Interpret 从不失败。
func Interpret(action Action, session *Session, exePath string, res runner.Result) Status {
	st := Status{
		Action:    action,
		Installed: true,
		Running:   RunningUnknown,
	}

	// A timeout overrides everything, including the exit code, and the
	// partial output is discarded.
	// 超时覆盖一切（包括退出码），部分输出被丢弃。
	if res.TimedOut {
		st.Error = errTimedOut
		return st
	}

	st.Output = res.Output

	if res.ExitCode != 0 {
		switch {
		case action == ActionStart && res.ExitCode == exitCodeAlreadyRunning:
			// The emulator signals "already running" as a specific
			// negative code on a start attempt.
			// 模拟器在启动尝试时以特定的负数码表示“已在运行”。
			st.Success = true
			st.Running = RunningTrue
			st.Warning = warnAlreadyRunning

		case action == ActionStop && res.ExitCode == exitCodeAlreadyStopped:
			st.Success = true
			st.Running = RunningFalse
			st.Warning = warnAlreadyStopped

		default:
			msg := fmt.Sprintf("%s exited with code %d", exePath, res.ExitCode)
			if trimmed := strings.TrimSpace(res.Output); trimmed != "" {
				msg += ": " + trimmed
			}
			st.Error = msg
			// Output parsing is skipped entirely on an unexplained
			// nonzero exit; sticky values are not presented either.
			// 无法解释的非零退出完全跳过输出解析；也不呈现粘性值。
			return st
		}

		applySticky(&st, session)
		return st
	}

	st.Success = true
	parseOutput(&st, session, res.Output)
	applySticky(&st, session)
	return st
}

// parseOutput interprets the non-empty output lines by position against the
// schema table. Lines beyond the schema accumulate a combined warning.
// parseOutput 根据模式表按位置解释非空输出行。超出模式的行累积为合并警告。
func parseOutput(st *Status, session *Session, output string) {
	lines := nonEmptyLines(output)

	for i, line := range lines {
		if i >= len(outputSchema) {
			appendWarning(st, fmt.Sprintf("unexpected output line %d: %s", i+1, line))
			continue
		}

		rule := outputSchema[i]
		match := rule.pattern.FindStringSubmatch(line)
		if match == nil {
			// A non-matching line at a known position is silently skipped;
			// the field falls back to the session's sticky value.
			// 已知位置的不匹配行被静默跳过；字段回退到会话的粘性值。
			continue
		}

		value := match[1]
		if strings.HasSuffix(rule.field, "_endpoint") && !isAbsoluteURL(value) {
			continue
		}
		rule.assign(st, session, value)
	}
}

// applySticky backfills values the current run did not report from the
// session's last-known values. The running state is never backfilled.
// applySticky 用会话中最后已知的值回填本次运行未报告的值。
// 运行状态永不回填。
func applySticky(st *Status, session *Session) {
	if st.Version == "" {
		st.Version = session.Version
	}
	if st.BlobEndpoint == "" {
		st.BlobEndpoint = session.BlobEndpoint
	}
	if st.QueueEndpoint == "" {
		st.QueueEndpoint = session.QueueEndpoint
	}
	if st.TableEndpoint == "" {
		st.TableEndpoint = session.TableEndpoint
	}
}

// appendWarning accumulates warnings into one combined string
// appendWarning 将警告累积为一个合并字符串
func appendWarning(st *Status, msg string) {
	if st.Warning == "" {
		st.Warning = msg
		return
	}
	st.Warning += warningSeparator + msg
}

// nonEmptyLines splits output into trimmed, non-empty lines
// nonEmptyLines 将输出拆分为去除空白的非空行
func nonEmptyLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// isAbsoluteURL reports whether value parses as an absolute URL
// isAbsoluteURL 报告值是否解析为绝对 URL
func isAbsoluteURL(value string) bool {
	u, err := url.Parse(value)
	return err == nil && u.IsAbs()
}
