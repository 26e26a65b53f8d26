// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"net/http"
	"net/rpc"
	"testing"

	rpctypes "github.com/33cn/timedpot/rpc/types"
	"github.com/33cn/timedpot/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

type fakeServer struct {
	s      *rpc.Server
	routes map[string]http.Handler
}

func (f *fakeServer) JRPC() *rpc.Server                         { return f.s }
func (f *fakeServer) Handle(pattern string, handler http.Handler) { f.routes[pattern] = handler }
func (f *fakeServer) Config() *types.RPC                         { return &types.RPC{} }

func TestRegister(t *testing.T) {
	var execName string
	var rpcName string
	Register(&PluginBase{
		Name:     "fake",
		ExecName: "fakeexec",
		Exec:     func(name string, env *Env) { execName = name },
		RPC:      func(name string, s rpctypes.RPCServer) { rpcName = name },
		Cmd:      func() *cobra.Command { return &cobra.Command{Use: "fake"} },
	})
	assert.True(t, HasExec("fakeexec"))
	assert.False(t, HasExec("none"))

	assert.Panics(t, func() { Register(&PluginBase{Name: "fake"}) })
	assert.Panics(t, func() { Register(&PluginBase{}) })
	assert.Panics(t, func() { Register(nil) })

	InitExec(&Env{})
	assert.Equal(t, "fakeexec", execName)

	AddRPC(&fakeServer{s: rpc.NewServer(), routes: make(map[string]http.Handler)})
	assert.Equal(t, "fakeexec", rpcName)

	root := &cobra.Command{Use: "root"}
	AddCmd(root)
	cmd, _, err := root.Find([]string{"fake"})
	assert.NoError(t, err)
	assert.Equal(t, "fake", cmd.Name())
}

func TestPluginBaseNil(t *testing.T) {
	p := &PluginBase{Name: "empty", ExecName: "empty"}
	root := &cobra.Command{Use: "root"}
	p.AddCmd(root)
	p.InitExec(&Env{})
	p.AddRPC(nil)
	assert.Empty(t, root.Commands())
}
