// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/timedpot/common/address"
	"github.com/33cn/timedpot/types"
)

// LoadExecAccount Load exec account from address and exec
func (acc *DB) LoadExecAccount(addr, execaddr string) *types.Account {
	value, err := acc.db.Get(acc.execAccountKey(addr, execaddr))
	if err != nil {
		return &types.Account{Addr: addr}
	}
	var acc1 types.Account
	err = types.Decode(value, &acc1)
	if err != nil {
		panic(err) //数据库已经损坏
	}
	return &acc1
}

// SaveExecAccount save exec account data to db
func (acc *DB) SaveExecAccount(execaddr string, acc1 *types.Account) {
	set := acc.GetExecKVSet(execaddr, acc1)
	for i := 0; i < len(set); i++ {
		err := acc.db.Set(set[i].Key, set[i].Value)
		if err != nil {
			panic(err)
		}
	}
}

// GetExecKVSet 将执行账户数据转为数据库存储kv
func (acc *DB) GetExecKVSet(execaddr string, acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.execAccountKey(acc1.Addr, execaddr),
		Value: value,
	})
	return kvset
}

func (acc *DB) execAccountKey(address, execaddr string) (key []byte) {
	key = make([]byte, 0, len(acc.execAccountKeyPerfix)+len(execaddr)+len(address)+1)
	key = append(key, acc.execAccountKeyPerfix...)
	key = append(key, []byte(execaddr)...)
	key = append(key, []byte(":")...)
	key = append(key, []byte(address)...)
	return key
}

// ExecAddress 根据执行器名称获取执行器地址
func (acc *DB) ExecAddress(name string) string {
	return address.ExecAddress(name)
}

// ExecDeposit  在当前addr的execaddr地址中存款
func (acc *DB) ExecDeposit(addr, execaddr string, amount uint64) (*types.Receipt, error) {
	if addr == execaddr {
		return nil, types.ErrSendSameToRecv
	}
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	acc1 := acc.LoadExecAccount(addr, execaddr)
	copyacc := *acc1
	balance, err := types.SafeAdd(acc1.Balance, amount)
	if err != nil {
		return nil, err
	}
	acc1.Balance = balance
	receiptBalance := &types.ReceiptExecAccountTransfer{
		ExecAddr: execaddr,
		Prev:     &copyacc,
		Current:  acc1,
	}
	acc.SaveExecAccount(execaddr, acc1)
	return acc.execReceipt(types.TyLogExecDeposit, acc1, receiptBalance), nil
}

// ExecWithdraw 从addr的execaddr地址中取款
func (acc *DB) ExecWithdraw(execaddr, addr string, amount uint64) (*types.Receipt, error) {
	if addr == execaddr {
		return nil, types.ErrSendSameToRecv
	}
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	acc1 := acc.LoadExecAccount(addr, execaddr)
	if acc1.Balance < amount {
		alog.Error("ExecWithdraw", "balance", acc1.Balance, "amount", amount)
		return nil, types.ErrNoBalance
	}
	copyacc := *acc1
	acc1.Balance -= amount
	receiptBalance := &types.ReceiptExecAccountTransfer{
		ExecAddr: execaddr,
		Prev:     &copyacc,
		Current:  acc1,
	}
	acc.SaveExecAccount(execaddr, acc1)
	return acc.execReceipt(types.TyLogExecWithdraw, acc1, receiptBalance), nil
}

// ExecEscrow 从 from 的主账户扣款，存入 holder 在执行器中的子账户
// 执行器自己的主账户不参与，不同 holder 之间的托管互不影响
func (acc *DB) ExecEscrow(from, holder, execaddr string, amount uint64) (*types.Receipt, error) {
	if from == holder {
		return nil, types.ErrSendSameToRecv
	}
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	accFrom := acc.LoadAccount(from)
	if accFrom.Balance < amount {
		return nil, types.ErrNoBalance
	}
	receipt, err := acc.ExecDeposit(holder, execaddr, amount)
	if err != nil {
		return nil, err
	}
	copyfrom := *accFrom
	accFrom.Balance -= amount
	acc.SaveAccount(accFrom)
	receipt1 := acc.balanceReceipt(types.TyLogTransfer, accFrom, &types.ReceiptAccountTransfer{Prev: &copyfrom, Current: accFrom})
	return types.MergeReceipt(receipt1, receipt), nil
}

// ExecPayout 从 holder 在执行器中的子账户取出，转入 to 的主账户
func (acc *DB) ExecPayout(holder, to, execaddr string, amount uint64) (*types.Receipt, error) {
	if holder == to {
		return nil, types.ErrSendSameToRecv
	}
	accTo := acc.LoadAccount(to)
	balance, err := types.SafeAdd(accTo.Balance, amount)
	if err != nil {
		return nil, err
	}
	receipt, err := acc.ExecWithdraw(execaddr, holder, amount)
	if err != nil {
		return nil, err
	}
	copyto := *accTo
	accTo.Balance = balance
	acc.SaveAccount(accTo)
	receipt2 := acc.balanceReceipt(types.TyLogTransfer, accTo, &types.ReceiptAccountTransfer{Prev: &copyto, Current: accTo})
	return types.MergeReceipt(receipt, receipt2), nil
}

func (acc *DB) balanceReceipt(ty int32, acc1 *types.Account, r *types.ReceiptAccountTransfer) *types.Receipt {
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetKVSet(acc1),
		Logs: []*types.ReceiptLog{{Ty: ty, Log: types.Encode(r)}},
	}
}

func (acc *DB) execReceipt(ty int32, acc1 *types.Account, r *types.ReceiptExecAccountTransfer) *types.Receipt {
	log1 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(r),
	}
	kv := acc.GetExecKVSet(r.ExecAddr, acc1)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: []*types.ReceiptLog{log1},
	}
}
