// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands timedpot 命令行
package commands

import (
	"fmt"
	"os"

	dbm "github.com/33cn/timedpot/common/db"
	pty "github.com/33cn/timedpot/plugin/dapp/timedpot/types"
	"github.com/33cn/timedpot/rpc/jsonclient"
	rpctypes "github.com/33cn/timedpot/rpc/types"
	"github.com/33cn/timedpot/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var coinPrecision = decimal.New(int64(types.Coin), 0)

// PoolResult 便于阅读的奖池
type PoolResult struct {
	PoolID            string `json:"poolID"`
	Authority         string `json:"authority"`
	PotAmount         string `json:"potAmount"`
	LastDepositor     string `json:"lastDepositor"`
	LastDepositAmount string `json:"lastDepositAmount"`
	EndTimestamp      int64  `json:"endTimestamp"`
	GameActive        bool   `json:"gameActive"`
	DurationSeconds   int64  `json:"durationSeconds"`
	CreateTime        int64  `json:"createTime"`
	DepositCount      int64  `json:"depositCount"`
}

// AccountResult 便于阅读的账户
type AccountResult struct {
	Addr    string `json:"addr"`
	Balance string `json:"balance"`
}

type poolTx struct {
	Result  *pty.Pool                   `json:"result"`
	Receipt *rpctypes.ReceiptDataResult `json:"receipt"`
}

// ParseCoins 把 "1.5" 这样的金额转成最小单位
func ParseCoins(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if d.Sign() < 0 {
		return 0, types.ErrAmount
	}
	v := d.Mul(coinPrecision)
	if !v.Equal(v.Truncate(0)) {
		return 0, types.ErrAmount
	}
	if v.Cmp(decimal.New(int64(types.MaxCoin), 0)) >= 0 {
		return 0, types.ErrAmount
	}
	return uint64(v.IntPart()), nil
}

// FormatCoins 最小单位转成 coins
func FormatCoins(amount uint64) string {
	return decimal.New(int64(amount), 0).Div(coinPrecision).StringFixed(4)
}

func decodePool(p *pty.Pool) *PoolResult {
	if p == nil {
		return nil
	}
	return &PoolResult{
		PoolID:            p.PoolID,
		Authority:         p.Authority,
		PotAmount:         FormatCoins(p.PotAmount),
		LastDepositor:     p.LastDepositor,
		LastDepositAmount: FormatCoins(p.LastDepositAmount),
		EndTimestamp:      p.EndTimestamp,
		GameActive:        p.GameActive,
		DurationSeconds:   p.DurationSeconds,
		CreateTime:        p.CreateTime,
		DepositCount:      p.DepositCount,
	}
}

func decodeAccount(acc *types.Account) *AccountResult {
	return &AccountResult{Addr: acc.Addr, Balance: FormatCoins(acc.Balance)}
}

func method(name string) string {
	return pty.JRPCName + "." + name
}

// TimedpotCmd timedpot 命令
func TimedpotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timedpot",
		Short: "Timed pot operation",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		PoolCmd(),
		AccountCmd(),
	)
	return cmd
}

// PoolCmd 奖池相关命令
func PoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Pool create, deposit, claim and query",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		CreatePoolCmd(),
		DepositCmd(),
		ClaimCmd(),
		GetPoolCmd(),
		ListPoolsCmd(),
		ListEventsCmd(),
		PoolAddressCmd(),
	)
	return cmd
}

// CreatePoolCmd 创建奖池
func CreatePoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pool owned by authority",
		Run:   createPool,
	}
	cmd.Flags().StringP("authority", "a", "", "authority address")
	cmd.MarkFlagRequired("authority")
	cmd.Flags().Int64P("duration", "d", 60, "countdown duration in seconds")
	return cmd
}

func createPool(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	authority, _ := cmd.Flags().GetString("authority")
	duration, _ := cmd.Flags().GetInt64("duration")
	params := &pty.PoolCreate{Authority: authority, DurationSeconds: duration}
	var res poolTx
	ctx := jsonclient.NewRpcCtx(rpcLaddr, method("CreatePool"), params, &res)
	ctx.SetResultCb(parsePoolTx)
	ctx.Run()
}

// DepositCmd 存款
func DepositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit into a pool, must exceed the last deposit",
		Run:   deposit,
	}
	cmd.Flags().StringP("pool", "p", "", "pool address")
	cmd.MarkFlagRequired("pool")
	cmd.Flags().StringP("from", "f", "", "depositor address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("amount", "m", "", "deposit amount in coins")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func deposit(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	pool, _ := cmd.Flags().GetString("pool")
	from, _ := cmd.Flags().GetString("from")
	amountStr, _ := cmd.Flags().GetString("amount")
	amount, err := ParseCoins(amountStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	params := &pty.PoolDeposit{PoolID: pool, Depositor: from, Amount: amount}
	var res poolTx
	ctx := jsonclient.NewRpcCtx(rpcLaddr, method("Deposit"), params, &res)
	ctx.SetResultCb(parsePoolTx)
	ctx.Run()
}

func parsePoolTx(arg interface{}) (interface{}, error) {
	res := arg.(*poolTx)
	return struct {
		Result  *PoolResult                 `json:"result"`
		Receipt *rpctypes.ReceiptDataResult `json:"receipt"`
	}{decodePool(res.Result), res.Receipt}, nil
}

// ClaimCmd 领奖
func ClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Claim the pot after the countdown ends",
		Run:   claim,
	}
	cmd.Flags().StringP("pool", "p", "", "pool address")
	cmd.MarkFlagRequired("pool")
	cmd.Flags().StringP("claimer", "c", "", "claimer address")
	cmd.MarkFlagRequired("claimer")
	return cmd
}

func claim(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	pool, _ := cmd.Flags().GetString("pool")
	claimer, _ := cmd.Flags().GetString("claimer")
	params := &pty.PoolClaim{PoolID: pool, Claimer: claimer}
	var res rpctypes.ReplyTx
	ctx := jsonclient.NewRpcCtx(rpcLaddr, method("Claim"), params, &res)
	ctx.Run()
}

// GetPoolCmd 查询奖池
func GetPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get pool by address or authority",
		Run:   getPool,
	}
	cmd.Flags().StringP("pool", "p", "", "pool address")
	cmd.Flags().StringP("authority", "a", "", "authority address")
	return cmd
}

func getPool(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	pool, _ := cmd.Flags().GetString("pool")
	authority, _ := cmd.Flags().GetString("authority")
	if pool == "" && authority == "" {
		fmt.Fprintln(os.Stderr, "pool or authority is required")
		return
	}
	params := &pty.ReqPool{PoolID: pool, Authority: authority}
	var res pty.Pool
	ctx := jsonclient.NewRpcCtx(rpcLaddr, method("GetPool"), params, &res)
	ctx.SetResultCb(func(arg interface{}) (interface{}, error) {
		return decodePool(arg.(*pty.Pool)), nil
	})
	ctx.Run()
}

// ListPoolsCmd 奖池列表
func ListPoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pools",
		Run:   listPools,
	}
	cmd.Flags().StringP("primary", "k", "", "start after this pool address")
	cmd.Flags().Int32P("count", "c", 10, "count")
	cmd.Flags().Int32P("direction", "d", dbm.ListASC, "0: desc, 1: asc")
	return cmd
}

func listPools(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	primary, _ := cmd.Flags().GetString("primary")
	count, _ := cmd.Flags().GetInt32("count")
	direction, _ := cmd.Flags().GetInt32("direction")
	params := &pty.ReqListPools{PrimaryKey: primary, Count: count, Direction: direction}
	var res pty.ReplyPools
	ctx := jsonclient.NewRpcCtx(rpcLaddr, method("ListPools"), params, &res)
	ctx.SetResultCb(func(arg interface{}) (interface{}, error) {
		reply := arg.(*pty.ReplyPools)
		result := make([]*PoolResult, 0, len(reply.Pools))
		for _, p := range reply.Pools {
			result = append(result, decodePool(p))
		}
		return result, nil
	})
	ctx.Run()
}

// ListEventsCmd 奖池历史事件
func ListEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List events of a pool address",
		Run:   listEvents,
	}
	cmd.Flags().StringP("pool", "p", "", "pool address")
	cmd.MarkFlagRequired("pool")
	cmd.Flags().Int64P("index", "i", 0, "start after this event index")
	cmd.Flags().Int32P("count", "c", 10, "count")
	cmd.Flags().Int32P("direction", "d", dbm.ListASC, "0: desc, 1: asc")
	return cmd
}

func listEvents(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	pool, _ := cmd.Flags().GetString("pool")
	index, _ := cmd.Flags().GetInt64("index")
	count, _ := cmd.Flags().GetInt32("count")
	direction, _ := cmd.Flags().GetInt32("direction")
	params := &pty.ReqListPoolEvents{PoolID: pool, Index: index, Count: count, Direction: direction}
	var res pty.ReplyPoolEvents
	ctx := jsonclient.NewRpcCtx(rpcLaddr, method("ListPoolEvents"), params, &res)
	ctx.Run()
}

// PoolAddressCmd 计算奖池地址
func PoolAddressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Get pool address of authority",
		Run:   poolAddress,
	}
	cmd.Flags().StringP("authority", "a", "", "authority address")
	cmd.MarkFlagRequired("authority")
	return cmd
}

func poolAddress(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	authority, _ := cmd.Flags().GetString("authority")
	params := &pty.ReqPoolAddress{Authority: authority}
	ctx := jsonclient.NewRpcCtx(rpcLaddr, method("PoolAddress"), params, nil)
	ctx.RunWithoutMarshal()
}

// AccountCmd 账户相关命令
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account balance and faucet",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		BalanceCmd(),
		FaucetCmd(),
	)
	return cmd
}

// BalanceCmd 查询余额
func BalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get balance of addresses",
		Run:   balance,
	}
	cmd.Flags().StringSliceP("addr", "a", nil, "addresses")
	cmd.MarkFlagRequired("addr")
	cmd.Flags().StringP("exec", "e", "", "query escrow under executor, e.g. timedpot")
	return cmd
}

func balance(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	addrs, _ := cmd.Flags().GetStringSlice("addr")
	execer, _ := cmd.Flags().GetString("exec")
	params := &pty.ReqBalance{Addresses: addrs, Execer: execer}
	var res []*types.Account
	ctx := jsonclient.NewRpcCtx(rpcLaddr, method("GetBalance"), params, &res)
	ctx.SetResultCb(func(arg interface{}) (interface{}, error) {
		accounts := *arg.(*[]*types.Account)
		result := make([]*AccountResult, 0, len(accounts))
		for _, acc := range accounts {
			result = append(result, decodeAccount(acc))
		}
		return result, nil
	})
	ctx.Run()
}

// FaucetCmd 测试领币
func FaucetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faucet",
		Short: "Mint test coins, server must enable faucet",
		Run:   faucet,
	}
	cmd.Flags().StringP("addr", "a", "", "address")
	cmd.MarkFlagRequired("addr")
	cmd.Flags().StringP("amount", "m", "", "amount in coins")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func faucet(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	addr, _ := cmd.Flags().GetString("addr")
	amountStr, _ := cmd.Flags().GetString("amount")
	amount, err := ParseCoins(amountStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	params := &pty.Faucet{Addr: addr, Amount: amount}
	var res rpctypes.ReplyTx
	ctx := jsonclient.NewRpcCtx(rpcLaddr, method("Faucet"), params, &res)
	ctx.Run()
}
