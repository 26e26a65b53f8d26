// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor timedpot 执行器
//
// 每个操作在一个 local.DB 上执行，成功时账户和奖池的全部修改作为一个 batch 写入，
// 失败时全部丢弃。同一个奖池、同一个账户上的操作通过 lockset 串行执行。
package executor

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/33cn/timedpot/account"
	"github.com/33cn/timedpot/common/address"
	dbm "github.com/33cn/timedpot/common/db"
	"github.com/33cn/timedpot/common/db/local"
	"github.com/33cn/timedpot/common/lockset"
	"github.com/33cn/timedpot/metrics"
	pty "github.com/33cn/timedpot/plugin/dapp/timedpot/types"
	"github.com/33cn/timedpot/pluginmgr"
	"github.com/33cn/timedpot/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var tlog = log.New("module", "execs.timedpot")

var (
	driverName = pty.TimedpotX
	drivers    = make(map[string]*Timedpot)
	driverLock sync.RWMutex
)

// Init 创建执行器并注册，rpc 通过 Load 获取
func Init(name string, env *pluginmgr.Env) {
	var opts []Option
	if env.Metrics != nil {
		opts = append(opts, WithMetrics(env.Metrics))
	}
	t := New(env.DB, env.Cfg.Exec, opts...)
	driverLock.Lock()
	defer driverLock.Unlock()
	if _, dup := drivers[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	drivers[name] = t
}

// Load 获取已经初始化的执行器
func Load(name string) (*Timedpot, error) {
	driverLock.RLock()
	defer driverLock.RUnlock()
	t, ok := drivers[name]
	if !ok {
		return nil, errors.Wrap(types.ErrNotFound, "driver "+name)
	}
	return t, nil
}

// GetName 执行器名称
func GetName() string {
	return driverName
}

// Clock 执行时的时间来源
type Clock interface {
	Now() time.Time
}

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }

// Listener 事件提交之后的回调
type Listener func(ev *pty.PoolEvent)

// Option 执行器选项
type Option func(*Timedpot)

// WithClock 替换时间来源，默认使用 types.Now
func WithClock(c Clock) Option {
	return func(t *Timedpot) { t.clock = c }
}

// WithMetrics 使用外部的 metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Timedpot) { t.metrics = m }
}

// WithSync 提交时是否 fsync
func WithSync(sync bool) Option {
	return func(t *Timedpot) { t.sync = sync }
}

// Timedpot 执行器
type Timedpot struct {
	db        dbm.DB
	cfg       *types.Exec
	clock     Clock
	locks     *lockset.LockSet
	metrics   *metrics.Metrics
	execaddr  string
	sync      bool
	openPools int64

	mu        sync.RWMutex
	listeners []Listener
}

// New 创建执行器，db 由调用者负责关闭
func New(db dbm.DB, cfg *types.Exec, opts ...Option) *Timedpot {
	if cfg == nil {
		cfg = &types.Exec{}
	}
	t := &Timedpot{
		db:       db,
		cfg:      cfg,
		clock:    clockFunc(types.Now),
		locks:    lockset.New(),
		metrics:  metrics.New(),
		execaddr: address.ExecAddress(driverName),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.openPools = dbm.NewListHelper(db).PrefixCount(poolPrefix())
	t.metrics.SetOpenPools(t.openPools)
	return t
}

// GetDriverName 执行器名称
func (t *Timedpot) GetDriverName() string {
	return driverName
}

// ExecAddress 执行器地址, 所有奖池的托管账户都在该地址下
func (t *Timedpot) ExecAddress() string {
	return t.execaddr
}

// Metrics 执行器的指标
func (t *Timedpot) Metrics() *metrics.Metrics {
	return t.metrics
}

// AddListener 订阅已提交的奖池事件
func (t *Timedpot) AddListener(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

func (t *Timedpot) notify(receipt *types.Receipt) {
	t.mu.RLock()
	listeners := t.listeners
	t.mu.RUnlock()
	if len(listeners) == 0 || receipt == nil {
		return
	}
	for _, l := range receipt.Logs {
		if !pty.IsPoolLog(l.Ty) {
			continue
		}
		var ev pty.PoolEvent
		if err := types.Decode(l.Log, &ev); err != nil {
			tlog.Error("notify", "ty", l.Ty, "err", err)
			continue
		}
		for _, fn := range listeners {
			fn(&ev)
		}
	}
}

func poolLockKey(id string) string {
	return "pool:" + id
}

func accountLockKey(addr string) string {
	return "acct:" + addr
}

// exec 加锁后在新的 local.DB 上执行 fn，成功时一次性提交
func (t *Timedpot) exec(ty int32, keys []string, fn func(action *Action) (*types.Receipt, error)) (receipt *types.Receipt, err error) {
	op := pty.ActionName(ty)
	start := time.Now()
	defer func() {
		t.metrics.Mark(op, err)
		t.metrics.Since(op, start)
	}()

	unlock := t.locks.Lock(keys...)
	defer unlock()

	ldb := local.NewLocalDB(t.db, false)
	action := newAction(t, ldb)
	receipt, err = fn(action)
	if err != nil {
		ldb.Rollback()
		tlog.Debug("exec", "action", op, "err", err)
		return nil, err
	}
	if err = ldb.Commit(t.sync); err != nil {
		ldb.Rollback()
		tlog.Error("exec commit", "action", op, "err", err)
		return nil, err
	}
	t.notify(receipt)
	return receipt, nil
}

func (t *Timedpot) addOpenPools(delta int64) {
	t.metrics.SetOpenPools(atomic.AddInt64(&t.openPools, delta))
}

// CreatePool 创建奖池，奖池地址由 authority 确定
func (t *Timedpot) CreatePool(authority string, durationSeconds int64) (*pty.Pool, *types.Receipt, error) {
	// 参数只在 Action.CreatePool 中检查一次, exec 负责计数
	id := address.PoolAddress(authority)
	var pool *pty.Pool
	receipt, err := t.exec(pty.TimedpotActionCreate, []string{poolLockKey(id)}, func(action *Action) (r *types.Receipt, err error) {
		pool, r, err = action.CreatePool(&pty.PoolCreate{Authority: authority, DurationSeconds: durationSeconds})
		return r, err
	})
	if err != nil {
		return nil, nil, err
	}
	t.addOpenPools(1)
	tlog.Info("CreatePool", "pool", id, "authority", authority, "duration", durationSeconds)
	return pool, receipt, nil
}

// Deposit 存款，金额必须大于上一笔，并重置倒计时
func (t *Timedpot) Deposit(poolID, depositor string, amount uint64) (*pty.Pool, *types.Receipt, error) {
	var pool *pty.Pool
	keys := []string{poolLockKey(poolID), accountLockKey(depositor)}
	receipt, err := t.exec(pty.TimedpotActionDeposit, keys, func(action *Action) (r *types.Receipt, err error) {
		pool, r, err = action.Deposit(&pty.PoolDeposit{PoolID: poolID, Depositor: depositor, Amount: amount})
		return r, err
	})
	if err != nil {
		return nil, nil, err
	}
	tlog.Debug("Deposit", "pool", poolID, "depositor", depositor, "amount", amount, "end", pool.EndTimestamp)
	return pool, receipt, nil
}

// Claim 倒计时结束后最后一个存款者领走全部奖金，奖池记录删除
func (t *Timedpot) Claim(poolID, claimer string) (*pty.ClaimResult, *types.Receipt, error) {
	var result *pty.ClaimResult
	keys := []string{poolLockKey(poolID), accountLockKey(claimer)}
	receipt, err := t.exec(pty.TimedpotActionClaim, keys, func(action *Action) (r *types.Receipt, err error) {
		result, r, err = action.Claim(&pty.PoolClaim{PoolID: poolID, Claimer: claimer})
		return r, err
	})
	if err != nil {
		return nil, nil, err
	}
	t.addOpenPools(-1)
	tlog.Info("Claim", "pool", poolID, "claimer", claimer, "amount", result.Amount)
	return result, receipt, nil
}

// Faucet 测试领币，需要配置 enableFaucet
func (t *Timedpot) Faucet(addr string, amount uint64) (*types.Account, *types.Receipt, error) {
	var acc *types.Account
	receipt, err := t.exec(pty.TimedpotActionFaucet, []string{accountLockKey(addr)}, func(action *Action) (r *types.Receipt, err error) {
		acc, r, err = action.Faucet(&pty.Faucet{Addr: addr, Amount: amount})
		return r, err
	})
	if err != nil {
		return nil, nil, err
	}
	return acc, receipt, nil
}

// Action 一次操作的上下文，blocktime 在加锁之后取一次
type Action struct {
	coinsAccount *account.DB
	db           dbm.KVDB
	blocktime    int64
	execaddr     string
	cfg          *types.Exec
}

func newAction(t *Timedpot, db dbm.KVDB) *Action {
	return &Action{
		coinsAccount: account.NewCoinsAccount(db),
		db:           db,
		blocktime:    t.clock.Now().Unix(),
		execaddr:     t.execaddr,
		cfg:          t.cfg,
	}
}

func safeEnd(now, duration int64) (int64, error) {
	if duration > 0 && now > math.MaxInt64-duration {
		tlog.Error("safeEnd", "now", now, "duration", duration)
		return 0, pty.ErrOverflow
	}
	return now + duration, nil
}
