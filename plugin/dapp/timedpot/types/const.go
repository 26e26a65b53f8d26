// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/timedpot/types"
)

// TimedpotX 执行器名称
var TimedpotX = "timedpot"

// JRPCName jsonrpc 服务名
var JRPCName = "Timedpot"

// action ty
const (
	TimedpotActionCreate = iota + 1
	TimedpotActionDeposit
	TimedpotActionClaim
	TimedpotActionFaucet
)

// log ty, 从 1100 开始避免和账户日志冲突
const (
	TyLogPoolCreate  = 1101
	TyLogPoolDeposit = 1102
	TyLogPoolClaim   = 1103
)

var actionName = map[int32]string{
	TimedpotActionCreate:  "create",
	TimedpotActionDeposit: "deposit",
	TimedpotActionClaim:   "claim",
	TimedpotActionFaucet:  "faucet",
}

func init() {
	types.RegisterLogName(TyLogPoolCreate, "LogPoolCreate")
	types.RegisterLogName(TyLogPoolDeposit, "LogPoolDeposit")
	types.RegisterLogName(TyLogPoolClaim, "LogPoolClaim")
}

// ActionName 操作名，用于日志和指标
func ActionName(ty int32) string {
	if name, ok := actionName[ty]; ok {
		return name
	}
	return "unknown"
}

// IsPoolLog 是否为奖池事件日志
func IsPoolLog(ty int32) bool {
	return ty == TyLogPoolCreate || ty == TyLogPoolDeposit || ty == TyLogPoolClaim
}
