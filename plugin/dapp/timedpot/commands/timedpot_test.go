// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"testing"

	"github.com/33cn/timedpot/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoins(t *testing.T) {
	v, err := ParseCoins("1.5")
	require.NoError(t, err)
	assert.Equal(t, uint64(150000000), v)

	v, err = ParseCoins("0.00000001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	_, err = ParseCoins("0.000000001")
	assert.Equal(t, types.ErrAmount, err)
	_, err = ParseCoins("-1")
	assert.Equal(t, types.ErrAmount, err)
	_, err = ParseCoins("1000000000")
	assert.Equal(t, types.ErrAmount, err)
	_, err = ParseCoins("abc")
	assert.Error(t, err)
}

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "1.5000", FormatCoins(150000000))
	assert.Equal(t, "0.0000", FormatCoins(0))
}

func TestTimedpotCmd(t *testing.T) {
	cmd := TimedpotCmd()
	pool, _, err := cmd.Find([]string{"pool", "deposit"})
	require.NoError(t, err)
	assert.Equal(t, "deposit", pool.Name())
	acc, _, err := cmd.Find([]string{"account", "faucet"})
	require.NoError(t, err)
	assert.Equal(t, "faucet", acc.Name())
}
