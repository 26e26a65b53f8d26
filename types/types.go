// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types 实现了timedpot基础结构体、常量、配置与错误的定义
package types

import (
	"encoding/json"

	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var tlog = log.New("module", "types")

// Account 账户余额
type Account struct {
	Addr    string `json:"addr"`
	Balance uint64 `json:"balance"`
}

// KeyValue 一次状态写入; Value 为 nil 表示删除
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value,omitempty"`
}

// ReceiptLog typed event attached to a receipt
type ReceiptLog struct {
	Ty  int32           `json:"ty"`
	Log json.RawMessage `json:"log"`
}

// Receipt is the full effect of one operation: the state writes and the logs
type Receipt struct {
	Ty   int32         `json:"ty"`
	KV   []*KeyValue   `json:"kv"`
	Logs []*ReceiptLog `json:"logs"`
}

// ReceiptAccountTransfer balance change of a main account
type ReceiptAccountTransfer struct {
	Prev    *Account `json:"prev"`
	Current *Account `json:"current"`
}

// ReceiptExecAccountTransfer balance change of an account held inside an executor
type ReceiptExecAccountTransfer struct {
	ExecAddr string   `json:"execAddr"`
	Prev     *Account `json:"prev"`
	Current  *Account `json:"current"`
}

// MergeReceipt appends the writes and logs of r2 to r1
func MergeReceipt(r1, r2 *Receipt) *Receipt {
	if r1 == nil {
		return r2
	}
	if r2 == nil {
		return r1
	}
	r1.KV = append(r1.KV, r2.KV...)
	r1.Logs = append(r1.Logs, r2.Logs...)
	return r1
}

//CheckAmount  检测转账金额
func CheckAmount(amount uint64) bool {
	if amount == 0 || amount >= MaxCoin {
		return false
	}
	return true
}

//SafeAdd 带溢出检查的加法
func SafeAdd(a, b uint64) (uint64, error) {
	if a+b < a {
		return a, ErrOverflow
	}
	return a + b, nil
}

//Encode  编码
func Encode(data interface{}) []byte {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return b
}

//Decode  解码
func Decode(data []byte, v interface{}) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	if err := json.Unmarshal(data, v); err != nil {
		tlog.Error("Decode", "err", err)
		return errors.Wrap(ErrDecode, err.Error())
	}
	return nil
}

// MustDecode 数据是否已经编码
func MustDecode(data []byte, v interface{}) {
	if data == nil {
		return
	}
	err := json.Unmarshal(data, v)
	if err != nil {
		panic(err)
	}
}
