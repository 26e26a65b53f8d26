// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonclient

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// RpcCtx 命令行调用 rpc 的上下文
type RpcCtx struct {
	Addr   string
	Method string
	Params interface{}
	Res    interface{}
	cb     Callback
	out    io.Writer
	errOut io.Writer
}

// Callback 把 rpc 返回转换为便于阅读的结构
type Callback func(res interface{}) (interface{}, error)

// NewRpcCtx produce a object of rpcctx
func NewRpcCtx(laddr, method string, params, res interface{}) *RpcCtx {
	return &RpcCtx{
		Addr:   laddr,
		Method: method,
		Params: params,
		Res:    res,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// SetResultCb rpcctx callback
func (c *RpcCtx) SetResultCb(cb Callback) {
	c.cb = cb
}

// SetOutput 输出位置, 默认 stdout 和 stderr
func (c *RpcCtx) SetOutput(out, errOut io.Writer) {
	c.out = out
	c.errOut = errOut
}

// RunResult 调用 rpc, 有回调时返回回调的结果
func (c *RpcCtx) RunResult() (interface{}, error) {
	client, err := NewJSONClient(c.Addr)
	if err != nil {
		return nil, err
	}
	if err := client.Call(c.Method, c.Params, c.Res); err != nil {
		return nil, err
	}
	if c.cb == nil {
		return c.Res, nil
	}
	return c.cb(c.Res)
}

// Run 结果以缩进的 json 打印
func (c *RpcCtx) Run() {
	result, err := c.RunResult()
	if err != nil {
		fmt.Fprintln(c.errOut, err)
		return
	}
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		fmt.Fprintln(c.errOut, err)
		return
	}
	fmt.Fprintln(c.out, string(data))
}

// RunWithoutMarshal 返回值为字符串时直接打印
func (c *RpcCtx) RunWithoutMarshal() {
	var res string
	c.Res = &res
	c.cb = nil
	if _, err := c.RunResult(); err != nil {
		fmt.Fprintln(c.errOut, err)
		return
	}
	fmt.Fprintln(c.out, res)
}
