// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"testing"

	"github.com/33cn/timedpot/common/address"
	"github.com/33cn/timedpot/common/db"
	"github.com/33cn/timedpot/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addr1 = address.ExecAddress("user1")
	addr2 = address.ExecAddress("user2")
	addr3 = address.ExecAddress("user3")
	addr4 = address.ExecAddress("user4")
)

func GenerAccDb(t *testing.T) (*DB, *DB) {
	//构造账户数据库
	stroedb, err := db.NewGoMemDB("gomemdb", "test", 128)
	require.NoError(t, err)
	accCoin := NewCoinsAccount(stroedb)

	stroedb2, err := db.NewGoMemDB("gomemdb", "test", 128)
	require.NoError(t, err)
	accToken, err := NewAccountDB("token", "test", stroedb2)
	require.NoError(t, err)
	return accCoin, accToken
}

func (acc *DB) GenerAccData() {
	// 加入账户
	account := &types.Account{
		Balance: 1000 * 1e8,
		Addr:    addr1,
	}
	acc.SaveAccount(account)

	account.Balance = 900 * 1e8
	account.Addr = addr2
	acc.SaveAccount(account)

	account.Balance = 800 * 1e8
	account.Addr = addr3
	acc.SaveAccount(account)

	account.Balance = 700 * 1e8
	account.Addr = addr4
	acc.SaveAccount(account)
}

func TestNewAccountDB(t *testing.T) {
	_, err := NewAccountDB("to-ken", "test", nil)
	assert.Equal(t, types.ErrExecNameNotAllow, err)
	_, err = NewAccountDB("token", "te-st", nil)
	assert.Equal(t, types.ErrSymbolNameNotAllow, err)
	acc, err := NewAccountDB("token", "test", nil)
	require.NoError(t, err)
	assert.Equal(t, "test", acc.Symbol())
	assert.Equal(t, "mavl-token-test-"+addr1, string(acc.AccountKey(addr1)))
}

func TestCheckTransfer(t *testing.T) {
	accCoin, tokenCoin := GenerAccDb(t)
	accCoin.GenerAccData()
	tokenCoin.GenerAccData()

	require.NoError(t, accCoin.CheckTransfer(addr1, addr2, 10*1e8))
	require.NoError(t, tokenCoin.CheckTransfer(addr3, addr4, 10*1e8))
	assert.Equal(t, types.ErrNoBalance, accCoin.CheckTransfer(addr4, addr1, 701*1e8))
	assert.Equal(t, types.ErrAmount, accCoin.CheckTransfer(addr1, addr2, 0))
	assert.Equal(t, types.ErrSendSameToRecv, accCoin.CheckTransfer(addr1, addr1, 1))
}

func TestTransfer(t *testing.T) {
	accCoin, tokenCoin := GenerAccDb(t)
	accCoin.GenerAccData()
	tokenCoin.GenerAccData()

	receipt, err := accCoin.Transfer(addr1, addr2, 10*1e8)
	require.NoError(t, err)
	require.Len(t, receipt.KV, 2)
	require.Len(t, receipt.Logs, 2)
	assert.Equal(t, int32(types.TyLogTransfer), receipt.Logs[0].Ty)
	require.Equal(t, uint64(1000*1e8-10*1e8), accCoin.LoadAccount(addr1).Balance)
	require.Equal(t, uint64(900*1e8+10*1e8), accCoin.LoadAccount(addr2).Balance)

	_, err = tokenCoin.Transfer(addr3, addr4, 10*1e8)
	require.NoError(t, err)
	require.Equal(t, uint64(800*1e8-10*1e8), tokenCoin.LoadAccount(addr3).Balance)
	require.Equal(t, uint64(700*1e8+10*1e8), tokenCoin.LoadAccount(addr4).Balance)

	//不同资产之间互不影响
	require.Equal(t, uint64(1000*1e8), tokenCoin.LoadAccount(addr1).Balance)

	_, err = accCoin.Transfer(addr1, addr2, 10000*1e8)
	assert.Equal(t, types.ErrNoBalance, err)
}

func TestExecEscrowPayout(t *testing.T) {
	accCoin, _ := GenerAccDb(t)
	accCoin.GenerAccData()
	execaddr := address.ExecAddress("timedpot")
	holder := address.PoolAddress(addr1)

	receipt, err := accCoin.ExecEscrow(addr2, holder, execaddr, 100*1e8)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 2)
	assert.Equal(t, int32(types.TyLogTransfer), receipt.Logs[0].Ty)
	assert.Equal(t, int32(types.TyLogExecDeposit), receipt.Logs[1].Ty)
	assert.Equal(t, uint64(800*1e8), accCoin.LoadAccount(addr2).Balance)
	assert.Equal(t, uint64(100*1e8), accCoin.LoadExecAccount(holder, execaddr).Balance)
	//执行器主账户不变
	assert.Equal(t, uint64(0), accCoin.LoadAccount(execaddr).Balance)

	_, err = accCoin.ExecEscrow(addr2, holder, execaddr, 801*1e8)
	assert.Equal(t, types.ErrNoBalance, err)

	_, err = accCoin.ExecPayout(holder, addr3, execaddr, 101*1e8)
	assert.Equal(t, types.ErrNoBalance, err)

	receipt, err = accCoin.ExecPayout(holder, addr3, execaddr, 100*1e8)
	require.NoError(t, err)
	assert.Equal(t, int32(types.TyLogExecWithdraw), receipt.Logs[0].Ty)
	assert.Equal(t, uint64(0), accCoin.LoadExecAccount(holder, execaddr).Balance)
	assert.Equal(t, uint64(900*1e8), accCoin.LoadAccount(addr3).Balance)

	accs, err := accCoin.GetBalance([]string{holder}, "timedpot")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), accs[0].Balance)
	accs, err = accCoin.GetBalance([]string{addr3, addr4}, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(900*1e8), accs[0].Balance)
	assert.Equal(t, uint64(700*1e8), accs[1].Balance)
	_, err = accCoin.GetBalance([]string{"notaddress"}, "")
	assert.Equal(t, types.ErrInvalidAddress, err)
}

func TestExecDepositWithdraw(t *testing.T) {
	accCoin, _ := GenerAccDb(t)
	execaddr := address.ExecAddress("timedpot")
	_, err := accCoin.ExecDeposit(addr1, execaddr, 5)
	require.NoError(t, err)
	_, err = accCoin.ExecWithdraw(execaddr, addr1, 6)
	assert.Equal(t, types.ErrNoBalance, err)
	_, err = accCoin.ExecWithdraw(execaddr, addr1, 5)
	require.NoError(t, err)
	_, err = accCoin.ExecDeposit(execaddr, execaddr, 5)
	assert.Equal(t, types.ErrSendSameToRecv, err)
	_, err = accCoin.ExecDeposit(addr1, execaddr, 0)
	assert.Equal(t, types.ErrAmount, err)
}
