// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"bytes"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeToInt(t time.Time) (uint32, uint32) {
	secs := uint32(t.Unix() + ntpEpochOffset)
	frac := uint32((int64(t.Nanosecond()) << 32) / 1e9)
	return secs, frac
}

//本地启动一个时间偏移 offset 的 ntp 服务
func startFakeNtp(t *testing.T, offset time.Duration) string {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	go func() {
		buf := make([]byte, 48)
		for {
			_, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			now := time.Now().Add(offset)
			rsp := &packet{Settings: 0x1C}
			rsp.RxTimeSec, rsp.RxTimeFrac = timeToInt(now)
			rsp.TxTimeSec, rsp.TxTimeFrac = timeToInt(now)
			var out bytes.Buffer
			if err := binary.Write(&out, binary.BigEndian, rsp); err != nil {
				return
			}
			conn.WriteTo(out.Bytes(), addr)
		}
	}()
	return conn.LocalAddr().String()
}

func TestGetNtpTime(t *testing.T) {
	host := startFakeNtp(t, 5*time.Second)
	nettime, err := GetNtpTime(host)
	require.NoError(t, err)
	dt := time.Until(nettime)
	assert.True(t, dt > 4*time.Second && dt < 6*time.Second, dt.String())
}

func TestGetRealTime(t *testing.T) {
	hosts := []string{startFakeNtp(t, 5*time.Second), startFakeNtp(t, 5*time.Second), startFakeNtp(t, 5*time.Second)}
	dt, err := GetRealTimeRetry(hosts, 3)
	require.NoError(t, err)
	assert.True(t, dt > 4*time.Second && dt < 6*time.Second, dt.String())
}

func TestGetRealTimeNoServer(t *testing.T) {
	_, err := GetRealTimeRetry([]string{"127.0.0.1:1"}, 2)
	require.Error(t, err)
}

func TestIntToTime(t *testing.T) {
	now := time.Unix(1700000000, 500000000)
	sec, frac := timeToInt(now)
	back := intToTime(sec, frac)
	assert.True(t, back.Sub(now) < time.Millisecond && now.Sub(back) < time.Millisecond)
}
