// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecAddress(t *testing.T) {
	assert.Equal(t, "16htvcBNSEA7fZhAdLJphDwQRQJaHpyHTp", ExecAddress("ticket"))
	//cache
	assert.Equal(t, "16htvcBNSEA7fZhAdLJphDwQRQJaHpyHTp", ExecAddress("ticket"))
	require.NoError(t, CheckAddress(ExecAddress("timedpot")))
}

func TestPubkeyToAddress(t *testing.T) {
	b, err := hex.DecodeString("024a17b0c6eb3143839482faa7e917c9b90a8cfe5008dff748789b8cea1a3d08d5")
	require.NoError(t, err)
	addr := PubKeyToAddress(b)
	require.NoError(t, CheckAddress(addr.String()))

	a2, err := NewAddrFromString(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr.Hash160, a2.Hash160)
	assert.Equal(t, addr.String(), a2.String())
}

func TestPoolAddress(t *testing.T) {
	a1 := ExecAddress("alice")
	a2 := ExecAddress("bob")
	p1 := PoolAddress(a1)
	assert.Equal(t, p1, PoolAddress(a1))
	assert.NotEqual(t, p1, PoolAddress(a2))
	assert.NotEqual(t, p1, a1)
	require.NoError(t, CheckAddress(p1))
}

func TestCheckAddress(t *testing.T) {
	addr := ExecAddress("coins")
	require.NoError(t, CheckAddress(addr))

	assert.Error(t, CheckAddress(""))
	assert.Error(t, CheckAddress("0OIl"))
	assert.Error(t, CheckAddress(addr[:len(addr)-3]))

	//修改最后一个字符，校验和失败
	last := addr[len(addr)-1]
	bad := addr[:len(addr)-1] + "2"
	if last == '2' {
		bad = addr[:len(addr)-1] + "3"
	}
	assert.Error(t, CheckAddress(bad))
	_, err := NewAddrFromString(bad)
	assert.Error(t, err)
}

func BenchmarkExecAddress(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ExecAddress("ticket")
	}
}
