// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc timedpot 的 jsonrpc 服务和 websocket 事件推送
package rpc

import (
	"github.com/33cn/timedpot/plugin/dapp/timedpot/executor"
	pty "github.com/33cn/timedpot/plugin/dapp/timedpot/types"
	rpctypes "github.com/33cn/timedpot/rpc/types"
	log "github.com/inconshreveable/log15"
)

var rlog = log.New("module", "timedpot.rpc")

// Init 注册 Timedpot jsonrpc 服务, 开启 websocket 时注册 /ws
func Init(name string, s rpctypes.RPCServer) {
	t, err := executor.Load(name)
	if err != nil {
		panic(err)
	}
	InitRPC(t, s)
}

// InitRPC 使用给定的执行器注册
func InitRPC(t *executor.Timedpot, s rpctypes.RPCServer) *Broadcaster {
	if err := s.JRPC().RegisterName(pty.JRPCName, NewJrpc(t)); err != nil {
		panic(err)
	}
	cfg := s.Config()
	if cfg == nil || !cfg.EnableWebsocket {
		return nil
	}
	b := NewBroadcaster()
	t.AddListener(b.Broadcast)
	s.Handle("/ws", b)
	rlog.Info("InitRPC websocket enabled", "path", "/ws")
	return b
}
