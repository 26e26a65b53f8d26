// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// Config 配置
type Config struct {
	Title   string   `toml:"Title"`
	Log     *Log     `toml:"log"`
	Store   *Store   `toml:"store"`
	RPC     *RPC     `toml:"rpc"`
	Exec    *Exec    `toml:"exec"`
	Ntp     *Ntp     `toml:"ntp"`
	Metrics *Metrics `toml:"metrics"`
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `toml:"logFile"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `toml:"maxFileSize"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `toml:"maxBackups"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `toml:"maxAge"`
	// 日志文件名是否使用本地时间（否则使用UTC时间）
	LocalTime bool `toml:"localTime"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `toml:"compress"`
	// 是否打印调用源文件和行号
	CallerFile bool `toml:"callerFile"`
	// 是否打印调用方法
	CallerFunction bool `toml:"callerFunction"`
}

// Store 存储配置
type Store struct {
	// 数据存储格式名称，支持 goleveldb, gobadgerdb, memdb
	Driver  string `toml:"driver"`
	DbPath  string `toml:"dbPath"`
	DbCache int32  `toml:"dbCache"`
	Name    string `toml:"name"`
}

// RPC 配置
type RPC struct {
	JrpcBindAddr string   `toml:"jrpcBindAddr"`
	Whitelist    []string `toml:"whitelist"`
	// 每个 ip 每秒允许的请求数, 0 表示不限制
	RateLimit float64 `toml:"rateLimit"`
	RateBurst int64   `toml:"rateBurst"`
	// 是否开启 /ws 事件推送
	EnableWebsocket bool `toml:"enableWebsocket"`
}

// Exec 执行器配置
type Exec struct {
	// 是否开放测试用的领币接口
	EnableFaucet bool `toml:"enableFaucet"`
	// 单次领币上限
	FaucetLimit uint64 `toml:"faucetLimit"`
	// 最小倒计时长度（单位：秒）
	MinDuration int64 `toml:"minDuration"`
}

// Ntp 时间校准配置
type Ntp struct {
	Enable     bool     `toml:"enable"`
	Hosts      []string `toml:"hosts"`
	IntervalMs int64    `toml:"intervalMs"`
}

// Metrics 指标配置
type Metrics struct {
	EnableMetrics bool `toml:"enableMetrics"`
	// 周期性输出到日志，单位秒, 0 表示不输出
	LogInterval int64 `toml:"logInterval"`
}
