// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 实现账户资产操作
*/
package account

//package for account manger
//1. load from db
//2. save to db
//3. KVSet
//4. Transfer
//5. exec account deposit / withdraw
//6. escrow / payout between main account and exec account

import (
	"fmt"
	"strings"

	"github.com/33cn/timedpot/common/address"
	dbm "github.com/33cn/timedpot/common/db"
	"github.com/33cn/timedpot/types"
	log "github.com/inconshreveable/log15"
)

var alog = log.New("module", "account")

// DB for account
type DB struct {
	db                   dbm.KV
	accountKeyPerfix     []byte
	execAccountKeyPerfix []byte
	execer               string
	symbol               string
}

//NewCoinsAccount 默认的资产账户
func NewCoinsAccount(db dbm.KV) *DB {
	acc, err := NewAccountDB("coins", "bty", db)
	if err != nil {
		panic(err)
	}
	return acc
}

//NewAccountDB 创建 execer symbol 下的账户数据库
func NewAccountDB(execer string, symbol string, db dbm.KV) (*DB, error) {
	//如果execer 和  symbol 中存在 "-", 那么创建失败
	if strings.ContainsRune(execer, '-') {
		return nil, types.ErrExecNameNotAllow
	}
	if strings.ContainsRune(symbol, '-') {
		return nil, types.ErrSymbolNameNotAllow
	}
	prefix := SymbolPrefix(execer, symbol)
	accDB := &DB{
		accountKeyPerfix:     []byte(prefix),
		execAccountKeyPerfix: append([]byte(prefix), []byte("exec-")...),
		execer:               execer,
		symbol:               symbol,
	}
	accDB.SetDB(db)
	return accDB, nil
}

//SetDB 每个操作使用自己的 db，不同操作之间互不影响
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

//Symbol 资产名称
func (acc *DB) Symbol() string {
	return acc.symbol
}

//LoadAccount 载入账户，不存在时返回余额为0的账户
func (acc *DB) LoadAccount(addr string) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
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

//LoadAccounts 批量载入
func (acc *DB) LoadAccounts(addrs []string) []*types.Account {
	accs := make([]*types.Account, 0, len(addrs))
	for i := 0; i < len(addrs); i++ {
		accs = append(accs, acc.LoadAccount(addrs[i]))
	}
	return accs
}

//CheckTransfer 检查余额是否足够
func (acc *DB) CheckTransfer(from, to string, amount uint64) error {
	if !types.CheckAmount(amount) {
		return types.ErrAmount
	}
	if from == to {
		return types.ErrSendSameToRecv
	}
	accFrom := acc.LoadAccount(from)
	if accFrom.Balance < amount {
		return types.ErrNoBalance
	}
	return nil
}

//Transfer 主账户之间转账
func (acc *DB) Transfer(from, to string, amount uint64) (*types.Receipt, error) {
	if err := acc.CheckTransfer(from, to, amount); err != nil {
		return nil, err
	}
	accFrom := acc.LoadAccount(from)
	accTo := acc.LoadAccount(to)
	copyfrom := *accFrom
	copyto := *accTo

	balance, err := types.SafeAdd(accTo.Balance, amount)
	if err != nil {
		return nil, err
	}
	accFrom.Balance -= amount
	accTo.Balance = balance

	receiptBalanceFrom := &types.ReceiptAccountTransfer{
		Prev:    &copyfrom,
		Current: accFrom,
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}
	acc.SaveAccount(accFrom)
	acc.SaveAccount(accTo)
	return acc.transferReceipt(accFrom, accTo, receiptBalanceFrom, receiptBalanceTo), nil
}

func (acc *DB) transferReceipt(accFrom, accTo *types.Account, receiptFrom, receiptTo *types.ReceiptAccountTransfer) *types.Receipt {
	ty := int32(types.TyLogTransfer)
	log1 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptFrom),
	}
	log2 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptTo),
	}
	kv := acc.GetKVSet(accFrom)
	kv = append(kv, acc.GetKVSet(accTo)...)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: []*types.ReceiptLog{log1, log2},
	}
}

//SaveAccount 保存账户
func (acc *DB) SaveAccount(acc1 *types.Account) {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		err := acc.db.Set(set[i].Key, set[i].Value)
		if err != nil {
			panic(err)
		}
	}
}

//GetKVSet 将账户数据转为数据库存储kv
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.AccountKey(acc1.Addr),
		Value: value,
	})
	return kvset
}

// AccountKey return the key of address in DB
func (acc *DB) AccountKey(address string) (key []byte) {
	key = make([]byte, 0, len(acc.accountKeyPerfix)+len(address))
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(address)...)
	return key
}

//SymbolPrefix 账户 key 的前缀
func SymbolPrefix(execer string, symbol string) string {
	return fmt.Sprintf("mavl-%s-%s-", execer, symbol)
}

//SymbolExecPrefix 执行器账户 key 的前缀
func SymbolExecPrefix(execer string, symbol string) string {
	return fmt.Sprintf("mavl-%s-%s-exec", execer, symbol)
}

//GetBalance 查询余额, execer 不为空时查询执行器中的账户
func (acc *DB) GetBalance(addrs []string, execer string) ([]*types.Account, error) {
	for _, addr := range addrs {
		if err := address.CheckAddress(addr); err != nil {
			alog.Error("GetBalance", "addr", addr, "err", err)
			return nil, types.ErrInvalidAddress
		}
	}
	if execer == "" {
		return acc.LoadAccounts(addrs), nil
	}
	execaddr := address.ExecAddress(execer)
	accounts := make([]*types.Account, 0, len(addrs))
	for _, addr := range addrs {
		accounts = append(accounts, acc.LoadExecAccount(addr, execaddr))
	}
	return accounts, nil
}
