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
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/azuredevkit/emulatorctl/internal/runner"
)

// TestProperty_TimeoutAlwaysFails tests the timeout dominance property
// Property: for any exit code and any output, a timed-out result SHALL
// produce a failed Status with no captured output.
// TestProperty_TimeoutAlwaysFails 测试超时支配性属性
// 属性：对于任何退出码和任何输出，超时结果都应产生失败的 Status 且不携带输出。
func TestProperty_TimeoutAlwaysFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		action := rapid.SampledFrom(Actions).Draw(t, "action")
		res := runner.Result{
			ExitCode: rapid.IntRange(-10, 10).Draw(t, "exitCode"),
			Output:   rapid.String().Draw(t, "output"),
			TimedOut: true,
		}

		st := Interpret(action, &Session{}, testExePath, res)

		if st.Success {
			t.Fatalf("timed-out result must not succeed: %+v", st)
		}
		if st.Error != "timed out waiting for response" {
			t.Fatalf("unexpected error message: %q", st.Error)
		}
		if st.Output != "" {
			t.Fatalf("timed-out result must discard output, got %q", st.Output)
		}
	})
}

// TestProperty_ExitCodeMapping tests the exit-code classification property
// Property: exit code 0 SHALL succeed; -5 SHALL succeed only on start;
// -6 SHALL succeed only on stop; every other nonzero code SHALL fail.
// TestProperty_ExitCodeMapping 测试退出码分类属性
// 属性：退出码 0 应成功；-5 仅在启动时成功；-6 仅在停止时成功；
// 其他所有非零码都应失败。
func TestProperty_ExitCodeMapping(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		action := rapid.SampledFrom(Actions).Draw(t, "action")
		code := rapid.IntRange(-10, 10).Draw(t, "exitCode")

		st := Interpret(action, &Session{}, testExePath, runner.Result{ExitCode: code})

		want := code == 0 ||
			(action == ActionStart && code == -5) ||
			(action == ActionStop && code == -6)
		if st.Success != want {
			t.Fatalf("action %s code %d: success=%v, want %v", action, code, st.Success, want)
		}
		if st.Success && st.Error != "" {
			t.Fatalf("successful status carries error %q", st.Error)
		}
		if !st.Success && st.Error == "" {
			t.Fatalf("failed status carries no error")
		}
	})
}

// TestProperty_TrailingLineWarnings tests the warning accumulation property
// Property: N non-empty lines beyond the fifth SHALL accumulate exactly N
// warnings, each naming its one-based line number, without affecting success.
// TestProperty_TrailingLineWarnings 测试警告累积属性
// 属性：第五行之后的 N 个非空行应恰好累积 N 条警告，每条以 1 为基数
// 标明行号，且不影响成功。
func TestProperty_TrailingLineWarnings(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		extra := rapid.IntRange(1, 8).Draw(t, "extraLines")

		var sb strings.Builder
		sb.WriteString(canonicalOutput)
		for i := 0; i < extra; i++ {
			fmt.Fprintf(&sb, "trailing %d\n", i)
		}

		st := Interpret(ActionStatus, &Session{}, testExePath, runner.Result{ExitCode: 0, Output: sb.String()})

		if !st.Success {
			t.Fatalf("trailing lines must not fail the invocation: %+v", st)
		}
		parts := strings.Split(st.Warning, "; ")
		if len(parts) != extra {
			t.Fatalf("got %d warnings, want %d: %q", len(parts), extra, st.Warning)
		}
		for i, part := range parts {
			wantPrefix := fmt.Sprintf("unexpected output line %d:", 6+i)
			if !strings.HasPrefix(part, wantPrefix) {
				t.Fatalf("warning %d = %q, want prefix %q", i, part, wantPrefix)
			}
		}
	})
}

// TestProperty_InterpretIdempotent tests the repeatability property
// Property: interpreting the same result twice against an already-updated
// session SHALL produce identical Status values.
// TestProperty_InterpretIdempotent 测试可重复性属性
// 属性：对已更新的会话重复解释相同结果应产生完全相同的 Status 值。
func TestProperty_InterpretIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		action := rapid.SampledFrom(Actions).Draw(t, "action")
		res := runner.Result{
			ExitCode: rapid.SampledFrom([]int{0, 1, -5, -6}).Draw(t, "exitCode"),
			Output:   rapid.SampledFrom([]string{"", canonicalOutput, "garbage\n"}).Draw(t, "output"),
		}

		session := &Session{}
		first := Interpret(action, session, testExePath, res)
		second := Interpret(action, session, testExePath, res)

		if first != second {
			t.Fatalf("repeated interpretation diverged:\nfirst:  %+v\nsecond: %+v", first, second)
		}
	})
}

// TestProperty_SessionOnlyGrows tests the sticky monotonicity property
// Property: a session value, once set, SHALL never be cleared by any later
// interpretation, only overwritten by newly parsed data.
// TestProperty_SessionOnlyGrows 测试粘性单调性属性
// 属性：会话值一旦设置，绝不会被后续解释清除，只会被新解析的数据覆盖。
func TestProperty_SessionOnlyGrows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		session := &Session{}
		Interpret(ActionStatus, session, testExePath, runner.Result{ExitCode: 0, Output: canonicalOutput})
		before := *session

		action := rapid.SampledFrom(Actions).Draw(t, "action")
		res := runner.Result{
			ExitCode: rapid.SampledFrom([]int{0, 1, -5, -6}).Draw(t, "exitCode"),
			Output:   rapid.String().Draw(t, "output"),
			TimedOut: rapid.Bool().Draw(t, "timedOut"),
		}
		Interpret(action, session, testExePath, res)

		if session.Version == "" && before.Version != "" {
			t.Fatalf("session version was cleared")
		}
		if session.BlobEndpoint == "" && before.BlobEndpoint != "" {
			t.Fatalf("session blob endpoint was cleared")
		}
		if session.QueueEndpoint == "" && before.QueueEndpoint != "" {
			t.Fatalf("session queue endpoint was cleared")
		}
		if session.TableEndpoint == "" && before.TableEndpoint != "" {
			t.Fatalf("session table endpoint was cleared")
		}
	})
}
