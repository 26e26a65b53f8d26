// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/33cn/timedpot/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, log15.LvlDebug, getLevel("debug"))
	assert.Equal(t, log15.LvlInfo, getLevel("info"))
	assert.Equal(t, log15.LvlError, getLevel("nosuchlevel"))
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	l := log15.New("module", "test")
	l.SetHandler(getConsoleLogHandler(&buf, "warn"))
	l.Info("hidden")
	l.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetFileLog(t *testing.T) {
	defer log15.Root().SetHandler(log15.DiscardHandler())
	file := filepath.Join(t.TempDir(), "timedpot.log")
	cfg := &types.Log{LogFile: file, Loglevel: "info", LogConsoleLevel: "crit", CallerFile: true}
	SetFileLog(cfg)
	New("module", "test").Info("write to file", "key", "value")
	require.NoError(t, rotateLogger.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "write to file")
	assert.Contains(t, string(data), "key=value")
}

func TestFillDefaultValue(t *testing.T) {
	cfg := &types.Log{}
	fillDefaultValue(cfg)
	assert.Equal(t, "eror", cfg.Loglevel)
	assert.Equal(t, "eror", cfg.LogConsoleLevel)
}
