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

// Package logging builds the emulatorctl logger from the log configuration.
// logging 包根据日志配置构建 emulatorctl 的日志记录器。
//
// Without a log file the logger writes a console encoding to stderr so the
// command output on stdout stays machine-parseable. With a log file it
// writes JSON through a lumberjack rotating sink.
// 没有日志文件时，日志记录器将控制台编码写入标准错误，使标准输出上的命令
// 输出保持机器可解析。有日志文件时，通过 lumberjack 轮转接收器写入 JSON。
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/azuredevkit/emulatorctl/internal/config"
)

// New creates a logger from the log configuration
// New 根据日志配置创建日志记录器
func New(cfg config.LogConfig) (*zap.Logger, error) {
	// Parse log level / 解析日志级别
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var core zapcore.Core
	if cfg.File == "" {
		// Console logging to stderr / 控制台日志输出到标准错误
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		core = zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.Lock(os.Stderr),
			level,
		)
	} else {
		// File logging with rotation / 带轮转的文件日志
		sink := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		}
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(sink),
			level,
		)
	}

	return zap.New(core), nil
}
