// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli RunTimedpot 加载存储、执行器和 rpc 模块, 组合成 timedpot 服务
package cli

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/33cn/timedpot/common"
	dbm "github.com/33cn/timedpot/common/db"
	clog "github.com/33cn/timedpot/common/log"
	"github.com/33cn/timedpot/metrics"
	"github.com/33cn/timedpot/pluginmgr"
	"github.com/33cn/timedpot/rpc"
	"github.com/33cn/timedpot/types"
	"github.com/pkg/errors"
)

// Version 程序版本
const Version = "1.0.0"

var (
	configPath = flag.String("f", "", "configfile")
	datadir    = flag.String("datadir", "", "data dir of timedpot")
	versionCmd = flag.Bool("v", false, "version")
	fixtime    = flag.Bool("fixtime", false, "fix time")
	clilog     = clog.New("module", "cli")
)

// Node 一个运行中的 timedpot 服务
type Node struct {
	cfg     *types.Config
	db      dbm.DB
	metrics *metrics.Metrics
	rpc     *rpc.Server
	quit    chan struct{}
}

// NewNode 打开存储, 初始化插件的执行器和 rpc
func NewNode(cfg *types.Config) (*Node, error) {
	db, err := dbm.NewDB(cfg.Store.Name, cfg.Store.Driver, cfg.Store.DbPath, cfg.Store.DbCache)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	m := metrics.New()
	m.StartMetrics(cfg.Metrics)
	pluginmgr.InitExec(&pluginmgr.Env{DB: db, Cfg: cfg, Metrics: m})

	srv := rpc.New(cfg.RPC)
	if cfg.Metrics != nil && cfg.Metrics.EnableMetrics {
		srv.Handle("/metrics", m.Handler())
	}
	srv.RegisterPlugins()
	return &Node{cfg: cfg, db: db, metrics: m, rpc: srv, quit: make(chan struct{})}, nil
}

// Start 开始监听, 返回 jsonrpc 端口
func (n *Node) Start() (int, error) {
	if n.cfg.Ntp != nil && n.cfg.Ntp.Enable {
		types.SetFixTime(true)
		go n.fixtimeRoutine()
	}
	return n.rpc.Listen()
}

// Close 关闭 rpc 和存储
func (n *Node) Close() {
	close(n.quit)
	clilog.Info("begin close rpc module")
	n.rpc.Close()
	clilog.Info("begin close store module")
	n.db.Close()
}

func (n *Node) fixtimeRoutine() {
	hosts := n.cfg.Ntp.Hosts
	interval := time.Duration(n.cfg.Ntp.IntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		dt, err := common.GetRealTimeRetry(hosts, 10)
		if err != nil {
			clilog.Error("fixtime", "err", err)
		} else {
			types.SetTimeDelta(int64(dt))
			clilog.Info("change time", "delta", dt, "real.now", types.Now())
		}
		select {
		case <-ticker.C:
		case <-n.quit:
			return
		}
	}
}

func watching() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	clilog.Info("info:", "NumGoroutine:", runtime.NumGoroutine())
	clilog.Info("info:", "Mem:", m.Sys/(1024*1024))
	clilog.Info("info:", "HeapAlloc:", m.HeapAlloc/(1024*1024))
}

// RunTimedpot 读取配置并运行, 收到退出信号后关闭
func RunTimedpot(name string) {
	flag.Parse()
	if *versionCmd {
		fmt.Println(Version)
		return
	}
	if *configPath == "" {
		if name == "" {
			*configPath = "timedpot.toml"
		} else {
			*configPath = name + ".toml"
		}
	}
	var cfg *types.Config
	if _, err := os.Stat(*configPath); err == nil {
		cfg, err = types.InitCfg(*configPath)
		if err != nil {
			panic(err)
		}
	} else {
		clilog.Info("config file not found, use default", "path", *configPath)
		cfg = types.DefaultConfig()
	}
	if *datadir != "" {
		cfg.Store.DbPath = *datadir
	}
	if *fixtime {
		cfg.Ntp.Enable = true
	}
	clog.SetFileLog(cfg.Log)

	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	go func() {
		for range t.C {
			watching()
		}
	}()

	clilog.Info(cfg.Title + "-app:" + Version)
	node, err := NewNode(cfg)
	if err != nil {
		panic(err)
	}
	if _, err := node.Start(); err != nil {
		panic(err)
	}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	clilog.Info("receive signal", "signal", s)
	node.Close()
}
