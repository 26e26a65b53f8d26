// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/timedpot/types"
)

// GenesisInit 凭空给地址增加余额，供创世和测试领币使用
func (acc *DB) GenesisInit(addr string, amount uint64) (receipt *types.Receipt, err error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	accTo := acc.LoadAccount(addr)
	copyto := *accTo
	accTo.Balance, err = types.SafeAdd(accTo.Balance, amount)
	if err != nil {
		return nil, err
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}
	acc.SaveAccount(accTo)
	return acc.balanceReceipt(types.TyLogGenesisTransfer, accTo, receiptBalanceTo), nil
}
