// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/33cn/timedpot/common/address"
	dbm "github.com/33cn/timedpot/common/db"
	"github.com/33cn/timedpot/plugin/dapp/timedpot/executor"
	pty "github.com/33cn/timedpot/plugin/dapp/timedpot/types"
	rpcserver "github.com/33cn/timedpot/rpc"
	"github.com/33cn/timedpot/rpc/jsonclient"
	rpctypes "github.com/33cn/timedpot/rpc/types"
	"github.com/33cn/timedpot/types"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	authority = address.ExecAddress("rpc-authority")
	userA     = address.ExecAddress("rpc-userA")
)

type testClock struct {
	mu  sync.Mutex
	now int64
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Unix(c.now, 0)
}

func (c *testClock) Add(sec int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += sec
}

type poolReply struct {
	Result  *pty.Pool                   `json:"result"`
	Receipt *rpctypes.ReceiptDataResult `json:"receipt"`
}

type claimReply struct {
	Result  *pty.ClaimResult            `json:"result"`
	Receipt *rpctypes.ReceiptDataResult `json:"receipt"`
}

func newTestServer(t *testing.T, enableWebsocket bool) (*httptest.Server, *jsonclient.JSONClient, *Broadcaster, *testClock) {
	db, err := dbm.NewGoMemDB("timedpot-rpc", "", 128)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	clock := &testClock{now: 1700000000}
	tp := executor.New(db, &types.Exec{EnableFaucet: true}, executor.WithClock(clock))

	srv := rpcserver.New(&types.RPC{EnableWebsocket: enableWebsocket})
	b := InitRPC(tp, srv)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := jsonclient.NewJSONClient(ts.URL)
	require.NoError(t, err)
	return ts, client, b, clock
}

func TestJrpcFlow(t *testing.T) {
	_, client, b, clock := newTestServer(t, false)
	assert.Nil(t, b)

	var faucet struct {
		Result *types.Account `json:"result"`
	}
	require.NoError(t, client.Call("Timedpot.Faucet", &pty.Faucet{Addr: userA, Amount: 10 * types.Coin}, &faucet))
	assert.Equal(t, 10*types.Coin, faucet.Result.Balance)

	var poolID string
	require.NoError(t, client.Call("PoolAddress", &pty.ReqPoolAddress{Authority: authority}, &poolID))
	assert.Equal(t, address.PoolAddress(authority), poolID)

	var created poolReply
	require.NoError(t, client.Call("CreatePool", &pty.PoolCreate{Authority: authority, DurationSeconds: 10}, &created))
	assert.Equal(t, poolID, created.Result.PoolID)
	assert.True(t, created.Result.GameActive)
	require.Len(t, created.Receipt.Logs, 1)
	assert.Equal(t, "LogPoolCreate", created.Receipt.Logs[0].TyName)

	err := client.Call("CreatePool", &pty.PoolCreate{Authority: authority, DurationSeconds: 10}, &created)
	require.Error(t, err)
	assert.Equal(t, pty.ErrPoolAlreadyExists.Error(), err.Error())

	var deposited poolReply
	err = client.Call("Deposit", &pty.PoolDeposit{PoolID: poolID, Depositor: userA, Amount: 0}, &deposited)
	require.Error(t, err)
	assert.Equal(t, pty.ErrInvalidAmount.Error(), err.Error())
	require.NoError(t, client.Call("Deposit", &pty.PoolDeposit{PoolID: poolID, Depositor: userA, Amount: types.Coin}, &deposited))
	assert.Equal(t, types.Coin, deposited.Result.PotAmount)
	assert.Equal(t, int64(1700000010), deposited.Result.EndTimestamp)

	var pool pty.Pool
	require.NoError(t, client.Call("GetPool", &pty.ReqPool{PoolID: poolID}, &pool))
	assert.Equal(t, userA, pool.LastDepositor)
	require.NoError(t, client.Call("GetPool", &pty.ReqPool{Authority: authority}, &pool))
	assert.Equal(t, poolID, pool.PoolID)

	var pools pty.ReplyPools
	require.NoError(t, client.Call("ListPools", &pty.ReqListPools{}, &pools))
	require.Len(t, pools.Pools, 1)

	var accounts []*types.Account
	require.NoError(t, client.Call("GetBalance", &pty.ReqBalance{Addresses: []string{poolID}, Execer: pty.TimedpotX}, &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, types.Coin, accounts[0].Balance)
	err = client.Call("GetBalance", &pty.ReqBalance{}, &accounts)
	assert.Equal(t, types.ErrInvalidParam.Error(), err.Error())

	err = client.Call("Claim", &pty.PoolClaim{PoolID: poolID, Claimer: userA}, nil)
	require.Error(t, err)
	assert.Equal(t, pty.ErrGameNotEnded.Error(), err.Error())
	clock.Add(10)
	var claimed claimReply
	require.NoError(t, client.Call("Claim", &pty.PoolClaim{PoolID: poolID, Claimer: userA}, &claimed))
	assert.True(t, claimed.Result.Destroyed)
	assert.Equal(t, types.Coin, claimed.Result.Amount)

	err = client.Call("GetPool", &pty.ReqPool{PoolID: poolID}, &pool)
	require.Error(t, err)
	assert.Equal(t, pty.ErrPoolNotFound.Error(), err.Error())

	var events pty.ReplyPoolEvents
	require.NoError(t, client.Call("ListPoolEvents", &pty.ReqListPoolEvents{PoolID: poolID, Direction: dbm.ListASC}, &events))
	require.Len(t, events.Events, 3)
	assert.Equal(t, "LogPoolClaim", events.Events[2].Name)
}

func TestWebsocketFeed(t *testing.T) {
	ts, client, b, _ := newTestServer(t, true)
	require.NotNil(t, b)
	poolID := address.PoolAddress(authority)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?pool=" + poolID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	other, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws?pool=other", nil)
	require.NoError(t, err)
	defer other.Close()
	require.Eventually(t, func() bool { return b.Len() == 2 }, time.Second, 10*time.Millisecond)

	var created poolReply
	require.NoError(t, client.Call("CreatePool", &pty.PoolCreate{Authority: authority, DurationSeconds: 10}, &created))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev pty.PoolEvent
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, int32(pty.TyLogPoolCreate), ev.Ty)
	assert.Equal(t, poolID, ev.PoolID)
	assert.Equal(t, int64(1), ev.Index)

	// 其他奖池的订阅者收不到
	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = other.ReadMessage()
	require.Error(t, err)

	conn.Close()
	require.Eventually(t, func() bool { return b.Len() == 1 }, 3*time.Second, 10*time.Millisecond)
	other.Close()
	require.Eventually(t, func() bool { return b.Len() == 0 }, 3*time.Second, 10*time.Millisecond)
}

func TestWebsocketPingTimeout(t *testing.T) {
	ts, _, b, _ := newTestServer(t, true)
	b.mu.Lock()
	b.pongWait, b.pingPeriod = 300*time.Millisecond, 100*time.Millisecond
	b.mu.Unlock()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	// 一直在读的连接会自动回 pong
	alive, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer alive.Close()
	var pings int32
	alive.SetPingHandler(func(data string) error {
		atomic.AddInt32(&pings, 1)
		return alive.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})
	go func() {
		for {
			if _, _, err := alive.ReadMessage(); err != nil {
				return
			}
		}
	}()
	// 不读的连接不会回 pong
	silent, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer silent.Close()
	require.Eventually(t, func() bool { return b.Len() == 2 }, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool { return b.Len() == 1 }, 3*time.Second, 20*time.Millisecond)
	assert.Never(t, func() bool { return b.Len() == 0 }, 600*time.Millisecond, 20*time.Millisecond)
	assert.True(t, atomic.LoadInt32(&pings) > 0)
}

func TestBroadcastSlowClient(t *testing.T) {
	b := NewBroadcaster()
	c := &wsClient{id: "slow", send: make(chan []byte, 1)}
	b.clients[c.id] = c
	b.Broadcast(&pty.PoolEvent{PoolID: "p"})
	assert.Equal(t, 1, b.Len())
	b.Broadcast(&pty.PoolEvent{PoolID: "p"})
	assert.Equal(t, 0, b.Len())
	_, ok := <-c.send
	assert.True(t, ok)
	_, ok = <-c.send
	assert.False(t, ok)
}
