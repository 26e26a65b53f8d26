// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "timedpot", cfg.Title)
	assert.Equal(t, "goleveldb", cfg.Store.Driver)
	assert.Equal(t, int64(1), cfg.Exec.MinDuration)
	assert.False(t, cfg.Exec.EnableFaucet)
	assert.Equal(t, "localhost:8901", cfg.RPC.JrpcBindAddr)
	assert.Len(t, cfg.Ntp.Hosts, 5)
}

func TestInitCfgStringOverride(t *testing.T) {
	cfg, err := InitCfgString(`
Title="local"
[store]
driver="memdb"
[exec]
enableFaucet=true
`)
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Title)
	assert.Equal(t, "memdb", cfg.Store.Driver)
	//未覆盖的项保留默认值
	assert.Equal(t, "timedpot", cfg.Store.Name)
	assert.True(t, cfg.Exec.EnableFaucet)
	assert.Equal(t, uint64(100000000000), cfg.Exec.FaucetLimit)
	assert.Equal(t, "info", cfg.Log.Loglevel)
}

func TestInitCfgStringInvalid(t *testing.T) {
	_, err := InitCfgString("[exec]\nminDuration=0\n")
	require.Error(t, err)
	assert.Equal(t, ErrInvalidParam, errors.Cause(err))

	_, err = InitCfgString("Title=")
	require.Error(t, err)
}

func TestInitCfg(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timedpot.toml")
	require.NoError(t, os.WriteFile(path, []byte("[rpc]\njrpcBindAddr=\"0.0.0.0:9901\"\n"), 0600))
	cfg, err := InitCfg(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9901", cfg.RPC.JrpcBindAddr)

	_, err = InitCfg(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestTimeDelta(t *testing.T) {
	defer SetTimeDelta(0)
	SetTimeDelta(int64(10 * time.Second))
	assert.Equal(t, 10*time.Second, GetTimeDelta())
	assert.True(t, Now().After(time.Now().Add(9*time.Second)))

	//超过60s 不做修正
	SetTimeDelta(int64(61 * time.Second))
	assert.Equal(t, time.Duration(0), GetTimeDelta())

	SetFixTime(true)
	assert.True(t, IsFixTime())
	SetFixTime(false)
	assert.False(t, IsFixTime())
}

func TestCheckAmountAndSafeAdd(t *testing.T) {
	assert.False(t, CheckAmount(0))
	assert.True(t, CheckAmount(1))
	assert.False(t, CheckAmount(MaxCoin))

	v, err := SafeAdd(1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v)
	_, err = SafeAdd(^uint64(0), 1)
	assert.Equal(t, ErrOverflow, err)
}

func TestEncodeDecode(t *testing.T) {
	acc := &Account{Addr: "addr", Balance: 10}
	var out Account
	require.NoError(t, Decode(Encode(acc), &out))
	assert.Equal(t, *acc, out)
	assert.Equal(t, ErrEmpty, Decode(nil, &out))
	assert.Equal(t, ErrDecode, errors.Cause(Decode([]byte("{"), &out)))
}
