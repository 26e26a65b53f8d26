// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"sort"
	"sync"

	rpctypes "github.com/33cn/timedpot/rpc/types"
	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
)

var (
	mgrlog      = log.New("module", "plugin.manager")
	pluginItems = make(map[string]Plugin)
	once        = &sync.Once{}
)

// InitExec init exec, 只执行一次
func InitExec(env *Env) {
	once.Do(func() {
		for _, item := range items() {
			mgrlog.Info("InitExec", "plugin", item.GetName(), "exec", item.GetExecutorName())
			item.InitExec(env)
		}
	})
}

// HasExec check is have the name exec
func HasExec(name string) bool {
	for _, item := range pluginItems {
		if item.GetExecutorName() == name {
			return true
		}
	}
	return false
}

// Register Register plugin
func Register(p Plugin) {
	if p == nil {
		panic("plugin param is nil")
	}
	packageName := p.GetName()
	if len(packageName) == 0 {
		panic("plugin package name is empty")
	}
	if _, ok := pluginItems[packageName]; ok {
		panic("execute plugin item is existed. name = " + packageName)
	}
	pluginItems[packageName] = p
}

// AddCmd add Cmd to rootCmd
func AddCmd(rootCmd *cobra.Command) {
	for _, item := range items() {
		item.AddCmd(rootCmd)
	}
}

// AddRPC add rpc
func AddRPC(s rpctypes.RPCServer) {
	for _, item := range items() {
		item.AddRPC(s)
	}
}

// 按名字排序，保证初始化顺序固定
func items() []Plugin {
	names := make([]string, 0, len(pluginItems))
	for name := range pluginItems {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]Plugin, 0, len(names))
	for _, name := range names {
		list = append(list, pluginItems[name])
	}
	return list
}
