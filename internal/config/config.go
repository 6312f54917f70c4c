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

// Package config provides configuration management for emulatorctl.
// config 包提供 emulatorctl 的配置管理功能。
//
// Configuration loading priority (highest to lowest):
// 配置加载优先级（从高到低）：
// 1. Command line arguments / 命令行参数
// 2. Environment variables / 环境变量
// 3. Configuration file / 配置文件
// 4. Default values / 默认值
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default configuration values
// 默认配置值
const (
	DefaultConfigPath    = "emulatorctl.yaml"
	DefaultTimeout       = 30 * time.Second
	DefaultLogLevel      = "info"
	DefaultLogMaxSize    = 100 // MB
	DefaultLogMaxBackups = 3
	DefaultLogMaxAge     = 7 // days
)

// Config represents the emulatorctl configuration
// Config 表示 emulatorctl 配置
type Config struct {
	// Emulator configuration / 模拟器配置
	Emulator EmulatorConfig `mapstructure:"emulator"`

	// Log configuration / 日志配置
	Log LogConfig `mapstructure:"log"`
}

// EmulatorConfig contains storage-emulator related settings
// EmulatorConfig 包含存储模拟器相关设置
type EmulatorConfig struct {
	// Executable is an explicit path to the emulator executable.
	// When empty the locator probes the conventional SDK install locations.
	// Executable 是模拟器可执行文件的显式路径。
	// 为空时定位器会探测常规的 SDK 安装位置。
	Executable string `mapstructure:"executable"`

	// WorkingDir is the working directory for emulator invocations.
	// Defaults to the directory containing the executable.
	// WorkingDir 是模拟器调用的工作目录。
	// 默认为可执行文件所在的目录。
	WorkingDir string `mapstructure:"working_dir"`

	// Timeout is the wall-clock limit for a single emulator invocation
	// Timeout 是单次模拟器调用的墙钟时间限制
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig contains logging settings
// LogConfig 包含日志设置
type LogConfig struct {
	// Level is the log level (debug, info, warn, error)
	// Level 是日志级别（debug, info, warn, error）
	Level string `mapstructure:"level"`

	// File is the log file path; empty logs to stderr
	// File 是日志文件路径；为空时输出到标准错误
	File string `mapstructure:"file"`

	// MaxSize is the maximum size of log file in MB before rotation
	// MaxSize 是日志文件轮转前的最大大小（MB）
	MaxSize int `mapstructure:"max_size"`

	// MaxBackups is the maximum number of old log files to retain
	// MaxBackups 是保留的旧日志文件的最大数量
	MaxBackups int `mapstructure:"max_backups"`

	// MaxAge is the maximum number of days to retain old log files
	// MaxAge 是保留旧日志文件的最大天数
	MaxAge int `mapstructure:"max_age"`
}

// Load loads configuration from file and environment variables
// Load 从文件和环境变量加载配置
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values / 设置默认值
	setDefaults(v)

	// Set config file path / 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Check environment variable / 检查环境变量
		envPath := os.Getenv("EMULATORCTL_CONFIG_PATH")
		if envPath != "" {
			v.SetConfigFile(envPath)
		} else {
			v.SetConfigFile(DefaultConfigPath)
		}
	}

	// Enable environment variable override / 启用环境变量覆盖
	v.SetEnvPrefix("EMULATORCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file / 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error if we have defaults
		// 如果有默认值，配置文件未找到不是错误
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			// Check if file exists / 检查文件是否存在
			if _, statErr := os.Stat(v.ConfigFileUsed()); statErr == nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// File doesn't exist, use defaults / 文件不存在，使用默认值
		}
	}

	// Unmarshal config / 解析配置
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// Emulator defaults / 模拟器默认值
	v.SetDefault("emulator.executable", "")
	v.SetDefault("emulator.working_dir", "")
	v.SetDefault("emulator.timeout", DefaultTimeout)

	// Log defaults / 日志默认值
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", DefaultLogMaxSize)
	v.SetDefault("log.max_backups", DefaultLogMaxBackups)
	v.SetDefault("log.max_age", DefaultLogMaxAge)
}

// Validate validates the configuration
// Validate 验证配置
func (c *Config) Validate() error {
	// Validate log level / 验证日志级别
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	// Validate timeout / 验证超时
	if c.Emulator.Timeout < time.Second {
		return errors.New("emulator.timeout must be at least 1 second")
	}

	return nil
}

// String returns a string representation of the config (for debugging)
// String 返回配置的字符串表示（用于调试）
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Emulator.Executable: %s, Emulator.Timeout: %v, Log.Level: %s}",
		c.Emulator.Executable,
		c.Emulator.Timeout,
		c.Log.Level,
	)
}

// ToYAML serializes the configuration to YAML format
// ToYAML 将配置序列化为 YAML 格式
func (c *Config) ToYAML() ([]byte, error) {
	// Marshal through yaml.v3 so Windows paths (backslashes, spaces,
	// parentheses) are escaped correctly; the timeout is written in its
	// duration form so it reads back the same way the config file does.
	// 通过 yaml.v3 序列化，使 Windows 路径（反斜杠、空格、括号）被正确转义；
	// 超时以其时长形式写出，与配置文件的读取方式一致。
	doc := map[string]any{
		"emulator": map[string]any{
			"executable":  c.Emulator.Executable,
			"working_dir": c.Emulator.WorkingDir,
			"timeout":     c.Emulator.Timeout.String(),
		},
		"log": map[string]any{
			"level":       c.Log.Level,
			"file":        c.Log.File,
			"max_size":    c.Log.MaxSize,
			"max_backups": c.Log.MaxBackups,
			"max_age":     c.Log.MaxAge,
		},
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize config: %w", err)
	}
	return out, nil
}

// LoadFromYAML loads configuration from YAML bytes
// LoadFromYAML 从 YAML 字节加载配置
func LoadFromYAML(yamlData []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults first / 首先设置默认值
	setDefaults(v)

	// Read from bytes / 从字节读取
	if err := v.ReadConfig(strings.NewReader(string(yamlData))); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Unmarshal config / 解析配置
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Equal compares two configs for equality
// Equal 比较两个配置是否相等
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}

	// Compare Emulator / 比较 Emulator
	if c.Emulator.Executable != other.Emulator.Executable ||
		c.Emulator.WorkingDir != other.Emulator.WorkingDir ||
		c.Emulator.Timeout != other.Emulator.Timeout {
		return false
	}

	// Compare Log / 比较 Log
	if c.Log.Level != other.Log.Level ||
		c.Log.File != other.Log.File ||
		c.Log.MaxSize != other.Log.MaxSize ||
		c.Log.MaxBackups != other.Log.MaxBackups ||
		c.Log.MaxAge != other.Log.MaxAge {
		return false
	}

	return true
}
