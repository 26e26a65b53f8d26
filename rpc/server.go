// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc jsonrpc 服务，各个插件通过 pluginmgr.AddRPC 注册自己的服务
package rpc

import (
	"net"
	"net/http"
	"net/rpc"
	"sync"
	"time"

	"github.com/33cn/timedpot/pluginmgr"
	"github.com/33cn/timedpot/types"
	log "github.com/inconshreveable/log15"
	"github.com/kevinms/leakybucket-go"
	"github.com/pkg/errors"
)

var rlog = log.New("module", "rpc_server")

// Server jsonrpc 和插件的 http 路由共用一个端口
type Server struct {
	cfg       *types.RPC
	s         *rpc.Server
	mux       *http.ServeMux
	whitelist map[string]bool
	limiter   *leakybucket.Collector

	mu  sync.Mutex
	l   net.Listener
	srv *http.Server
}

// New new rpc server by cfg
func New(cfg *types.RPC) *Server {
	if cfg == nil {
		cfg = &types.RPC{}
	}
	s := &Server{
		cfg:       cfg,
		s:         rpc.NewServer(),
		mux:       http.NewServeMux(),
		whitelist: initIPWhitelist(cfg.Whitelist),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int64(cfg.RateLimit)
		}
		s.limiter = leakybucket.NewCollector(cfg.RateLimit, burst, true)
	}
	s.mux.Handle("/", &jsonrpcHandler{s: s.s})
	return s
}

// JRPC return jrpc
func (s *Server) JRPC() *rpc.Server {
	return s.s
}

// Config rpc 配置
func (s *Server) Config() *types.RPC {
	return s.cfg
}

// Handle 注册 http 路由
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
}

// RegisterPlugins 注册所有插件的 rpc
func (s *Server) RegisterPlugins() {
	pluginmgr.AddRPC(s)
}

// initIPWhitelist 为空时只允许本机访问, "*" 表示允许所有地址
func initIPWhitelist(list []string) map[string]bool {
	whitelist := make(map[string]bool)
	if len(list) == 0 {
		whitelist["127.0.0.1"] = true
		return whitelist
	}
	if len(list) == 1 && list[0] == "*" {
		whitelist["0.0.0.0"] = true
		return whitelist
	}
	for _, ip := range list {
		whitelist[ip] = true
	}
	return whitelist
}

func (s *Server) checkIPWhitelist(addr string) bool {
	//回环网络直接允许
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	if ip.IsLoopback() {
		return true
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		addr = ipv4.String()
	}
	if s.whitelist["0.0.0.0"] {
		return true
	}
	return s.whitelist[addr]
}

// allow 漏桶限流, 未配置时不限制
func (s *Server) allow(ip string) bool {
	if s.limiter == nil {
		return true
	}
	if s.limiter.Remaining(ip) <= 0 {
		return false
	}
	s.limiter.Add(ip, 1)
	return true
}

// Listen 监听 jrpcBindAddr, 返回实际的端口
func (s *Server) Listen() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listener, err := net.Listen("tcp", s.cfg.JrpcBindAddr)
	if err != nil {
		return 0, errors.Wrap(err, "jrpc listen")
	}
	s.l = listener
	s.srv = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func(srv *http.Server, l net.Listener) {
		if err := srv.Serve(l); err != nil && err != http.ErrServerClosed {
			rlog.Error("jrpc serve", "err", err)
		}
	}(s.srv, listener)
	port := listener.Addr().(*net.TCPAddr).Port
	rlog.Info("jrpc listen", "addr", listener.Addr().String())
	return port, nil
}

// Close rpc close
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		if err := s.srv.Close(); err != nil {
			rlog.Error("jrpc close", "err", err)
		}
		s.srv = nil
	}
	s.l = nil
}
