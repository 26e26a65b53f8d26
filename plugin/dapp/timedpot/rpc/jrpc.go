// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/33cn/timedpot/common/address"
	"github.com/33cn/timedpot/plugin/dapp/timedpot/executor"
	pty "github.com/33cn/timedpot/plugin/dapp/timedpot/types"
	rpctypes "github.com/33cn/timedpot/rpc/types"
	"github.com/33cn/timedpot/types"
)

// Jrpc Timedpot jsonrpc 服务
type Jrpc struct {
	t *executor.Timedpot
}

// NewJrpc new
func NewJrpc(t *executor.Timedpot) *Jrpc {
	return &Jrpc{t: t}
}

// CreatePool 创建奖池
func (c *Jrpc) CreatePool(in *pty.PoolCreate, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	pool, receipt, err := c.t.CreatePool(in.Authority, in.DurationSeconds)
	if err != nil {
		return err
	}
	*result = &rpctypes.ReplyTx{Result: pool, Receipt: rpctypes.DecodeLog(receipt)}
	return nil
}

// Deposit 存款
func (c *Jrpc) Deposit(in *pty.PoolDeposit, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	pool, receipt, err := c.t.Deposit(in.PoolID, in.Depositor, in.Amount)
	if err != nil {
		return err
	}
	*result = &rpctypes.ReplyTx{Result: pool, Receipt: rpctypes.DecodeLog(receipt)}
	return nil
}

// Claim 领奖
func (c *Jrpc) Claim(in *pty.PoolClaim, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	res, receipt, err := c.t.Claim(in.PoolID, in.Claimer)
	if err != nil {
		return err
	}
	*result = &rpctypes.ReplyTx{Result: res, Receipt: rpctypes.DecodeLog(receipt)}
	return nil
}

// Faucet 测试领币
func (c *Jrpc) Faucet(in *pty.Faucet, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	acc, receipt, err := c.t.Faucet(in.Addr, in.Amount)
	if err != nil {
		return err
	}
	*result = &rpctypes.ReplyTx{Result: acc, Receipt: rpctypes.DecodeLog(receipt)}
	return nil
}

// GetPool 查询奖池
func (c *Jrpc) GetPool(in *pty.ReqPool, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	var (
		pool *pty.Pool
		err  error
	)
	if in.PoolID != "" {
		pool, err = c.t.GetPool(in.PoolID)
	} else {
		pool, err = c.t.GetPoolByAuthority(in.Authority)
	}
	if err != nil {
		return err
	}
	*result = pool
	return nil
}

// ListPools 奖池列表
func (c *Jrpc) ListPools(in *pty.ReqListPools, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.t.ListPools(in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// ListPoolEvents 奖池事件
func (c *Jrpc) ListPoolEvents(in *pty.ReqListPoolEvents, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.t.ListPoolEvents(in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetBalance 查询余额
func (c *Jrpc) GetBalance(in *pty.ReqBalance, result *interface{}) error {
	if in == nil || len(in.Addresses) == 0 {
		return types.ErrInvalidParam
	}
	accounts, err := c.t.Balance(in.Addresses, in.Execer)
	if err != nil {
		return err
	}
	*result = accounts
	return nil
}

// PoolAddress 根据创建者计算奖池地址
func (c *Jrpc) PoolAddress(in *pty.ReqPoolAddress, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	if err := address.CheckAddress(in.Authority); err != nil {
		return pty.ErrInvalidAuthority
	}
	*result = address.PoolAddress(in.Authority)
	return nil
}
