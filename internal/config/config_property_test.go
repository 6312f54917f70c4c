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

package config

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

// Property: For any valid emulatorctl configuration object, serializing to
// YAML and parsing back SHALL produce an equivalent configuration.
// 属性：对于任何有效的 emulatorctl 配置对象，序列化为 YAML 并解析回来应该产生等效的配置。
func TestProperty_ConfigYAMLRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Generate a valid configuration / 生成有效配置
		cfg := generateValidConfig(t)

		// Serialize to YAML / 序列化为 YAML
		yamlData, err := cfg.ToYAML()
		if err != nil {
			t.Fatalf("Failed to serialize config to YAML: %v", err)
		}

		// Parse back from YAML / 从 YAML 解析回来
		parsedCfg, err := LoadFromYAML(yamlData)
		if err != nil {
			t.Fatalf("Failed to parse config from YAML: %v\nYAML content:\n%s", err, string(yamlData))
		}

		// Verify equality / 验证相等性
		if !cfg.Equal(parsedCfg) {
			t.Fatalf("Round-trip failed: original and parsed configs are not equal\nOriginal: %+v\nParsed: %+v\nYAML:\n%s",
				cfg, parsedCfg, string(yamlData))
		}
	})
}

// Property: Validate SHALL accept every configuration built from valid
// log levels and timeouts of at least one second.
// 属性：Validate 应该接受由有效日志级别和至少一秒的超时构建的每个配置。
func TestProperty_ValidateAcceptsValidConfigs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := generateValidConfig(t)

		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate rejected a valid config: %v\nConfig: %+v", err, cfg)
		}
	})
}

// generateValidConfig generates a valid Config for property testing
// generateValidConfig 为属性测试生成有效的 Config
func generateValidConfig(t *rapid.T) *Config {
	// Generate valid log levels / 生成有效的日志级别
	validLogLevels := []string{"debug", "info", "warn", "error"}
	logLevel := rapid.SampledFrom(validLogLevels).Draw(t, "logLevel")

	// Generate timeout (at least 1 second) / 生成超时（至少1秒）
	timeoutSeconds := rapid.IntRange(1, 300).Draw(t, "timeoutSeconds")

	// Generate Windows-style paths: backslashes, spaces and parentheses
	// are exactly what the SDK install locations contain
	// 生成 Windows 风格的路径：反斜杠、空格和括号正是 SDK 安装位置所包含的
	installDir := rapid.SampledFrom([]string{
		`C:\Program Files (x86)\Microsoft SDKs\Azure\Storage Emulator`,
		`C:\Program Files (x86)\Microsoft SDKs\Windows Azure\Storage Emulator`,
		`C:\Program Files\Azure Storage Emulator`,
		`D:\tools\storage emulator (local)`,
	}).Draw(t, "installDir")
	exeName := rapid.StringMatching(`[a-zA-Z][a-zA-Z0-9 ()_-]{0,15}[a-zA-Z0-9)]`).Draw(t, "exeName")
	logFile := `C:\logs\` + rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "logFileName") + ".log"

	// Generate log rotation settings / 生成日志轮转设置
	maxSize := rapid.IntRange(1, 1000).Draw(t, "maxSize")
	maxBackups := rapid.IntRange(1, 100).Draw(t, "maxBackups")
	maxAge := rapid.IntRange(1, 365).Draw(t, "maxAge")

	return &Config{
		Emulator: EmulatorConfig{
			Executable: installDir + `\` + exeName + ".exe",
			WorkingDir: installDir,
			Timeout:    time.Duration(timeoutSeconds) * time.Second,
		},
		Log: LogConfig{
			Level:      logLevel,
			File:       logFile,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     maxAge,
		},
	}
}
