// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"

	"github.com/33cn/timedpot/types"
)

// ReceiptLogResult 带名字的 receipt log
type ReceiptLogResult struct {
	Ty     int32           `json:"ty"`
	TyName string          `json:"tyName"`
	Log    json.RawMessage `json:"log"`
}

// ReceiptDataResult 便于阅读的 receipt
type ReceiptDataResult struct {
	Ty     int32               `json:"ty"`
	TyName string              `json:"tyName"`
	Logs   []*ReceiptLogResult `json:"logs"`
}

// DecodeLog decode log
func DecodeLog(r *types.Receipt) *ReceiptDataResult {
	if r == nil {
		return nil
	}
	var rTy string
	switch r.Ty {
	case types.ExecErr:
		rTy = "ExecErr"
	case types.ExecPack:
		rTy = "ExecPack"
	case types.ExecOk:
		rTy = "ExecOk"
	default:
		rTy = "Unknown"
	}
	rd := &ReceiptDataResult{Ty: r.Ty, TyName: rTy}
	for _, l := range r.Logs {
		rd.Logs = append(rd.Logs, &ReceiptLogResult{Ty: l.Ty, TyName: types.GetLogName(l.Ty), Log: l.Log})
	}
	return rd
}

// ReplyTx 写操作的返回，Result 为操作结果
type ReplyTx struct {
	Result  interface{}        `json:"result"`
	Receipt *ReceiptDataResult `json:"receipt"`
}
