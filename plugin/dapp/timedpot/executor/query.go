// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/timedpot/account"
	"github.com/33cn/timedpot/common/address"
	dbm "github.com/33cn/timedpot/common/db"
	"github.com/33cn/timedpot/common/db/local"
	pty "github.com/33cn/timedpot/plugin/dapp/timedpot/types"
	"github.com/33cn/timedpot/types"
)

const maxQueryCount = 100

func (t *Timedpot) queryDB() *local.DB {
	return local.NewLocalDB(t.db, true)
}

func queryCount(count int32) int32 {
	if count <= 0 || count > maxQueryCount {
		return maxQueryCount
	}
	return count
}

// GetPool 查询奖池，不存在时返回 ErrPoolNotFound
func (t *Timedpot) GetPool(poolID string) (*pty.Pool, error) {
	p, err := readPool(t.queryDB(), poolID)
	if err != nil {
		return nil, err
	}
	return &p.Pool, nil
}

// GetPoolByAuthority 根据创建者查询奖池
func (t *Timedpot) GetPoolByAuthority(authority string) (*pty.Pool, error) {
	if err := address.CheckAddress(authority); err != nil {
		return nil, pty.ErrInvalidAuthority
	}
	return t.GetPool(address.PoolAddress(authority))
}

// ListPools 按奖池地址排序分页查询全部奖池
func (t *Timedpot) ListPools(req *pty.ReqListPools) (*pty.ReplyPools, error) {
	var key []byte
	if req.PrimaryKey != "" {
		key = Key(req.PrimaryKey)
	}
	values, err := t.queryDB().List(poolPrefix(), key, queryCount(req.Count), req.Direction)
	if err != nil {
		return nil, err
	}
	reply := &pty.ReplyPools{Pools: make([]*pty.Pool, 0, len(values))}
	for _, value := range values {
		var pool pty.Pool
		if err := types.Decode(value, &pool); err != nil {
			return nil, err
		}
		reply.Pools = append(reply.Pools, &pool)
	}
	return reply, nil
}

// ListPoolEvents 查询奖池地址上的历史事件，奖池删除之后依然可以查询
func (t *Timedpot) ListPoolEvents(req *pty.ReqListPoolEvents) (*pty.ReplyPoolEvents, error) {
	if err := address.CheckAddress(req.PoolID); err != nil {
		return nil, types.ErrInvalidAddress
	}
	var key []byte
	if req.Index > 0 {
		key = eventKey(req.PoolID, req.Index)
	}
	values, err := t.queryDB().List(eventPrefix(req.PoolID), key, queryCount(req.Count), req.Direction)
	if err != nil {
		return nil, err
	}
	reply := &pty.ReplyPoolEvents{Events: make([]*pty.PoolEvent, 0, len(values))}
	for _, value := range values {
		var ev pty.PoolEvent
		if err := types.Decode(value, &ev); err != nil {
			return nil, err
		}
		reply.Events = append(reply.Events, &ev)
	}
	return reply, nil
}

// Balance 查询余额，execer 为执行器名称时查询该执行器下的账户，奖池托管余额用奖池地址查询
func (t *Timedpot) Balance(addrs []string, execer string) ([]*types.Account, error) {
	return account.NewCoinsAccount(t.queryDB()).GetBalance(addrs, execer)
}

// PoolBalance 奖池托管账户的余额
func (t *Timedpot) PoolBalance(poolID string) uint64 {
	return account.NewCoinsAccount(t.queryDB()).LoadExecAccount(poolID, t.execaddr).Balance
}

// PoolCount 当前存在的奖池数目
func (t *Timedpot) PoolCount() int64 {
	return dbm.NewListHelper(t.db).PrefixCount(poolPrefix())
}
