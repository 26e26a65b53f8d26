// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	dbm "github.com/33cn/timedpot/common/db"
	"github.com/33cn/timedpot/metrics"
	rpctypes "github.com/33cn/timedpot/rpc/types"
	"github.com/33cn/timedpot/types"
	"github.com/spf13/cobra"
)

// Env 执行器运行需要的存储、配置和指标
type Env struct {
	DB      dbm.DB
	Cfg     *types.Config
	Metrics *metrics.Metrics
}

// PluginBase plugin module base struct
type PluginBase struct {
	Name     string
	ExecName string
	RPC      func(name string, s rpctypes.RPCServer)
	Exec     func(name string, env *Env)
	Cmd      func() *cobra.Command
}

// GetName 获取整个插件的包名
func (p *PluginBase) GetName() string {
	return p.Name
}

// GetExecutorName 获取执行器名
func (p *PluginBase) GetExecutorName() string {
	return p.ExecName
}

// InitExec init exec
func (p *PluginBase) InitExec(env *Env) {
	if p.Exec != nil {
		p.Exec(p.ExecName, env)
	}
}

// AddCmd add Command for plugin cli
func (p *PluginBase) AddCmd(rootCmd *cobra.Command) {
	if p.Cmd != nil {
		cmd := p.Cmd()
		if cmd == nil {
			return
		}
		rootCmd.AddCommand(cmd)
	}
}

// AddRPC add Rpc for plugin
func (p *PluginBase) AddRPC(c rpctypes.RPCServer) {
	if p.RPC != nil {
		p.RPC(p.GetExecutorName(), c)
	}
}
