// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timedpot 注册 timedpot 插件
package timedpot

import (
	"github.com/33cn/timedpot/plugin/dapp/timedpot/commands"
	"github.com/33cn/timedpot/plugin/dapp/timedpot/executor"
	"github.com/33cn/timedpot/plugin/dapp/timedpot/rpc"
	"github.com/33cn/timedpot/pluginmgr"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     "timedpot",
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.TimedpotCmd,
		RPC:      rpc.Init,
	})
}
