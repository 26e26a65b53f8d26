// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// 默认配置，未在配置文件中给出的项使用这里的值
const defaultCfg = `
Title="timedpot"

[log]
loglevel = "info"
logConsoleLevel = "info"
logFile = ""
maxFileSize = 300
maxBackups = 100
maxAge = 28
localTime = true
compress = true
callerFile = false
callerFunction = false

[store]
name = "timedpot"
driver = "goleveldb"
dbPath = "datadir"
dbCache = 128

[rpc]
jrpcBindAddr = "localhost:8901"
whitelist = ["127.0.0.1"]
rateLimit = 20
rateBurst = 40
enableWebsocket = true

[exec]
enableFaucet = false
faucetLimit = 100000000000
minDuration = 1

[ntp]
enable = false
hosts = ["time.windows.com:123", "ntp.ubuntu.com:123", "pool.ntp.org:123", "cn.pool.ntp.org:123", "time.asia.apple.com:123"]
intervalMs = 300000

[metrics]
enableMetrics = false
logInterval = 0
`

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	cfg, err := InitCfgString(defaultCfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

// InitCfg 从文件读取配置
func InitCfg(path string) (*Config, error) {
	str, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return InitCfgString(str)
}

// InitCfgString 解析配置字符串, 缺省的段落使用默认值
func InitCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	if _, err := tml.Decode(defaultCfg, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode default config")
	}
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) check() error {
	if cfg.Store.Driver == "" || cfg.Store.Name == "" {
		return errors.Wrap(ErrInvalidParam, "store driver and name must be set")
	}
	if cfg.Exec.MinDuration <= 0 {
		return errors.Wrap(ErrInvalidParam, "exec.minDuration must be positive")
	}
	if cfg.RPC.RateLimit < 0 || cfg.RPC.RateBurst < 0 {
		return errors.Wrap(ErrInvalidParam, "rpc rate limit must not be negative")
	}
	return nil
}

// ReadFile 读取文件
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read config %s", path)
	}
	return string(data), nil
}
