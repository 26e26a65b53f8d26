// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types rpc 服务与插件之间共用的接口和结构
package types

import (
	"net/http"
	"net/rpc"

	"github.com/33cn/timedpot/types"
)

// RPCServer 插件通过该接口注册 jsonrpc 服务和 http 路由
type RPCServer interface {
	JRPC() *rpc.Server
	Handle(pattern string, handler http.Handler)
	Config() *types.RPC
}
