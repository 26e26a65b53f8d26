// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/timedpot/common/address"
	pty "github.com/33cn/timedpot/plugin/dapp/timedpot/types"
	"github.com/33cn/timedpot/types"
)

func (action *Action) event(ty int32, p *DB, actor string, amount uint64) (*types.Receipt, error) {
	ev := &pty.PoolEvent{
		Ty:           ty,
		PoolID:       p.PoolID,
		Actor:        actor,
		Amount:       amount,
		PotAmount:    p.PotAmount,
		EndTimestamp: p.EndTimestamp,
		Time:         action.blocktime,
	}
	log, kv, err := saveEvent(action.db, ev)
	if err != nil {
		return nil, err
	}
	return &types.Receipt{Ty: types.ExecOk, KV: []*types.KeyValue{kv}, Logs: []*types.ReceiptLog{log}}, nil
}

// CreatePool 同一个创建者同时只能有一个奖池
func (action *Action) CreatePool(create *pty.PoolCreate) (*pty.Pool, *types.Receipt, error) {
	if create.DurationSeconds <= 0 || create.DurationSeconds < action.cfg.MinDuration {
		return nil, nil, pty.ErrInvalidDuration
	}
	if err := address.CheckAddress(create.Authority); err != nil {
		return nil, nil, pty.ErrInvalidAuthority
	}
	id := address.PoolAddress(create.Authority)
	_, err := readPool(action.db, id)
	if err == nil {
		tlog.Debug("CreatePool", "pool", id, "err", pty.ErrPoolAlreadyExists)
		return nil, nil, pty.ErrPoolAlreadyExists
	}
	if err != pty.ErrPoolNotFound {
		return nil, nil, err
	}
	p := NewDB(id, create.Authority, create.DurationSeconds, action.blocktime)
	if err := p.Save(action.db); err != nil {
		return nil, nil, err
	}
	receipt := &types.Receipt{Ty: types.ExecOk, KV: p.GetKVSet()}
	receiptLog, err := action.event(pty.TyLogPoolCreate, p, create.Authority, 0)
	if err != nil {
		return nil, nil, err
	}
	pool := p.Pool
	return &pool, types.MergeReceipt(receipt, receiptLog), nil
}

// Deposit 存款，检查顺序: 奖池存在且开放, 金额有效, 金额大于上一笔, 倒计时未结束
func (action *Action) Deposit(deposit *pty.PoolDeposit) (*pty.Pool, *types.Receipt, error) {
	p, err := readPool(action.db, deposit.PoolID)
	if err != nil {
		return nil, nil, err
	}
	if !p.GameActive {
		return nil, nil, pty.ErrGameClosed
	}
	if deposit.Amount == 0 || deposit.Amount >= types.MaxCoin {
		return nil, nil, pty.ErrInvalidAmount
	}
	// 第一笔存款没有金额限制
	if p.LastDepositAmount != 0 && deposit.Amount <= p.LastDepositAmount {
		tlog.Debug("Deposit", "pool", p.PoolID, "amount", deposit.Amount, "last", p.LastDepositAmount)
		return nil, nil, pty.ErrInvalidAmount
	}
	if p.EndTimestamp != 0 && action.blocktime >= p.EndTimestamp {
		return nil, nil, pty.ErrGameEnded
	}
	if err := address.CheckAddress(deposit.Depositor); err != nil {
		return nil, nil, types.ErrInvalidAddress
	}
	pot, err := types.SafeAdd(p.PotAmount, deposit.Amount)
	if err != nil || pot >= types.MaxCoin {
		return nil, nil, pty.ErrOverflow
	}
	end, err := safeEnd(action.blocktime, p.DurationSeconds)
	if err != nil {
		return nil, nil, err
	}
	receipt, err := action.coinsAccount.ExecEscrow(deposit.Depositor, p.PoolID, action.execaddr, deposit.Amount)
	if err != nil {
		tlog.Debug("Deposit escrow", "depositor", deposit.Depositor, "amount", deposit.Amount, "err", err)
		return nil, nil, err
	}
	p.PotAmount = pot
	p.LastDepositor = deposit.Depositor
	p.LastDepositAmount = deposit.Amount
	p.EndTimestamp = end
	p.DepositCount++
	if err := p.Save(action.db); err != nil {
		return nil, nil, err
	}
	receipt = types.MergeReceipt(receipt, &types.Receipt{Ty: types.ExecOk, KV: p.GetKVSet()})
	receiptLog, err := action.event(pty.TyLogPoolDeposit, p, deposit.Depositor, deposit.Amount)
	if err != nil {
		return nil, nil, err
	}
	pool := p.Pool
	return &pool, types.MergeReceipt(receipt, receiptLog), nil
}

// Claim 领奖后奖池记录删除，不能重复领取
func (action *Action) Claim(claim *pty.PoolClaim) (*pty.ClaimResult, *types.Receipt, error) {
	p, err := readPool(action.db, claim.PoolID)
	if err != nil {
		return nil, nil, err
	}
	if p.EndTimestamp == 0 || action.blocktime < p.EndTimestamp {
		return nil, nil, pty.ErrGameNotEnded
	}
	if claim.Claimer != p.LastDepositor {
		tlog.Debug("Claim", "pool", p.PoolID, "claimer", claim.Claimer, "winner", p.LastDepositor)
		return nil, nil, pty.ErrInvalidWinner
	}
	if p.PotAmount == 0 {
		return nil, nil, pty.ErrEmptyPot
	}
	amount := p.PotAmount
	receipt, err := action.coinsAccount.ExecPayout(p.PoolID, claim.Claimer, action.execaddr, amount)
	if err != nil {
		tlog.Error("Claim payout", "pool", p.PoolID, "amount", amount, "err", err)
		return nil, nil, err
	}
	kv, err := p.Delete(action.db)
	if err != nil {
		return nil, nil, err
	}
	receipt = types.MergeReceipt(receipt, &types.Receipt{Ty: types.ExecOk, KV: kv})
	p.PotAmount = 0
	p.GameActive = false
	receiptLog, err := action.event(pty.TyLogPoolClaim, p, claim.Claimer, amount)
	if err != nil {
		return nil, nil, err
	}
	result := &pty.ClaimResult{PoolID: p.PoolID, Claimer: claim.Claimer, Amount: amount, Destroyed: true}
	return result, types.MergeReceipt(receipt, receiptLog), nil
}

// Faucet 凭空增加余额，只用于测试网络
func (action *Action) Faucet(faucet *pty.Faucet) (*types.Account, *types.Receipt, error) {
	if !action.cfg.EnableFaucet {
		return nil, nil, pty.ErrFaucetDisabled
	}
	if action.cfg.FaucetLimit > 0 && faucet.Amount > action.cfg.FaucetLimit {
		return nil, nil, pty.ErrFaucetLimit
	}
	if err := address.CheckAddress(faucet.Addr); err != nil {
		return nil, nil, types.ErrInvalidAddress
	}
	receipt, err := action.coinsAccount.GenesisInit(faucet.Addr, faucet.Amount)
	if err != nil {
		return nil, nil, err
	}
	return action.coinsAccount.LoadAccount(faucet.Addr), receipt, nil
}
