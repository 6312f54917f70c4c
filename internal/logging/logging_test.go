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

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azuredevkit/emulatorctl/internal/config"
)

// TestNewConsoleLogger tests logger construction without a file sink
// TestNewConsoleLogger 测试不带文件接收器的日志记录器构建
func TestNewConsoleLogger(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	// Must not panic / 不能 panic
	logger.Debug("console logger works")
	require.NoError(t, logger.Sync())
}

// TestNewFileLogger tests that file logging writes to the configured path
// TestNewFileLogger 测试文件日志写入配置的路径
func TestNewFileLogger(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "emulatorctl.log")

	logger, err := New(config.LogConfig{
		Level:      "info",
		File:       logFile,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	require.NoError(t, err)

	logger.Info("file logger works")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file logger works")
}

// TestNewInvalidLevel tests that an unknown level is rejected
// TestNewInvalidLevel 测试拒绝未知级别
func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

// TestNewLevelFiltering tests that messages below the level are dropped
// TestNewLevelFiltering 测试丢弃低于级别的消息
func TestNewLevelFiltering(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "emulatorctl.log")

	logger, err := New(config.LogConfig{Level: "warn", File: logFile, MaxSize: 1})
	require.NoError(t, err)

	logger.Info("should be dropped")
	logger.Warn("should be kept")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should be dropped")
	assert.Contains(t, string(data), "should be kept")
}
