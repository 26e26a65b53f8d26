// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/33cn/timedpot/common/log"
	"github.com/33cn/timedpot/pluginmgr"
	"github.com/spf13/cobra"
)

// DefaultRPCAddr 与默认配置中的 jrpcBindAddr 一致
const DefaultRPCAddr = "http://localhost:8901"

var versionCliCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

// NewRootCmd 包含所有插件命令的根命令
func NewRootCmd(name, rpcAddr string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   name + "-cli",
		Short: name + " client tools",
	}
	rootCmd.PersistentFlags().String("rpc_laddr", rpcAddr, "http url")
	rootCmd.AddCommand(versionCliCmd)
	pluginmgr.AddCmd(rootCmd)
	return rootCmd
}

//Run :
func Run(RPCAddr string) {
	if RPCAddr == "" {
		RPCAddr = DefaultRPCAddr
	}
	log.SetLogLevel("error")
	if err := NewRootCmd("timedpot", RPCAddr).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
