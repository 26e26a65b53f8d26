// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types timedpot 执行器的数据结构，操作参数与查询结构
package types

// Pool 一局奖池的完整状态
type Pool struct {
	PoolID            string `json:"poolID"`
	Authority         string `json:"authority"`
	PotAmount         uint64 `json:"potAmount"`
	LastDepositor     string `json:"lastDepositor"`
	LastDepositAmount uint64 `json:"lastDepositAmount"`
	// 第一次存款之前为 0
	EndTimestamp    int64 `json:"endTimestamp"`
	GameActive      bool  `json:"gameActive"`
	DurationSeconds int64 `json:"durationSeconds"`
	CreateTime      int64 `json:"createTime"`
	DepositCount    int64 `json:"depositCount"`
}

// PoolCreate 创建奖池
type PoolCreate struct {
	Authority       string `json:"authority"`
	DurationSeconds int64  `json:"durationSeconds"`
}

// PoolDeposit 存款
type PoolDeposit struct {
	PoolID    string `json:"poolID"`
	Depositor string `json:"depositor"`
	Amount    uint64 `json:"amount"`
}

// PoolClaim 领奖
type PoolClaim struct {
	PoolID  string `json:"poolID"`
	Claimer string `json:"claimer"`
}

// Faucet 测试领币
type Faucet struct {
	Addr   string `json:"addr"`
	Amount uint64 `json:"amount"`
}

// ClaimResult 领奖结果，Destroyed 为 true 表示奖池记录已删除
type ClaimResult struct {
	PoolID    string `json:"poolID"`
	Claimer   string `json:"claimer"`
	Amount    uint64 `json:"amount"`
	Destroyed bool   `json:"destroyed"`
}

// PoolEvent 奖池事件，同时作为 receipt log 的内容
type PoolEvent struct {
	// 同一个奖池地址下的事件序号，从 1 开始
	Index        int64  `json:"index"`
	Ty           int32  `json:"ty"`
	Name         string `json:"name"`
	PoolID       string `json:"poolID"`
	Actor        string `json:"actor"`
	Amount       uint64 `json:"amount"`
	PotAmount    uint64 `json:"potAmount"`
	EndTimestamp int64  `json:"endTimestamp"`
	Time         int64  `json:"time"`
}

// ReqListPools 奖池列表，PrimaryKey 为上一页最后一个奖池地址
type ReqListPools struct {
	PrimaryKey string `json:"primaryKey"`
	Count      int32  `json:"count"`
	Direction  int32  `json:"direction"`
}

// ReplyPools 奖池列表
type ReplyPools struct {
	Pools []*Pool `json:"pools"`
}

// ReqListPoolEvents 事件列表，Index 为 0 时从头或尾开始
type ReqListPoolEvents struct {
	PoolID    string `json:"poolID"`
	Index     int64  `json:"index"`
	Count     int32  `json:"count"`
	Direction int32  `json:"direction"`
}

// ReplyPoolEvents 事件列表
type ReplyPoolEvents struct {
	Events []*PoolEvent `json:"events"`
}

// ReqBalance 余额查询，Execer 为空时查询主账户
type ReqBalance struct {
	Addresses []string `json:"addresses"`
	Execer    string   `json:"execer"`
}

// ReqPool 按奖池地址查询，PoolID 为空时按创建者查询
type ReqPool struct {
	PoolID    string `json:"poolID"`
	Authority string `json:"authority"`
}

// ReqPoolAddress 根据创建者计算奖池地址
type ReqPoolAddress struct {
	Authority string `json:"authority"`
}
