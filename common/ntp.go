// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"encoding/binary"
	"errors"
	"math"
	"net"
	"sort"
	"time"
)

const ntpEpochOffset = 2208988800

// ErrNetWorkDealy 请求和回复延时严重不对称
var ErrNetWorkDealy = errors.New("ErrNetWorkDealy")

// ErrNtpUnavailable 所有服务器都无法获得时间
var ErrNtpUnavailable = errors.New("ErrNtpUnavailable")

// ntp v3 报文, 48 字节, 大端
type packet struct {
	Settings       uint8  // leap yr indicator, ver number, and mode
	Stratum        uint8  // stratum of local clock
	Poll           int8   // poll exponent
	Precision      int8   // precision exponent
	RootDelay      uint32 // root delay
	RootDispersion uint32 // root dispersion
	ReferenceID    uint32 // reference id
	RefTimeSec     uint32 // reference timestamp sec
	RefTimeFrac    uint32 // reference timestamp fractional
	OrigTimeSec    uint32 // origin time secs
	OrigTimeFrac   uint32 // origin time fractional
	RxTimeSec      uint32 // receive time secs
	RxTimeFrac     uint32 // receive time frac
	TxTimeSec      uint32 // transmit time secs
	TxTimeFrac     uint32 // transmit time frac
}

//GetNtpTime 从一个 ntp 服务器获取时间
//delt = ((t2-t1)+(t3-t4))/2, t1/t4 为本地发送和接收时间, t2/t3 为服务器接收和发送时间
func GetNtpTime(host string) (time.Time, error) {

	// Setup a UDP connection
	conn, err := net.Dial("udp", host)
	if err != nil {
		return time.Time{}, err
	}
	defer conn.Close()
	if err := conn.SetDeadline(time.Now().Add(3 * time.Second)); err != nil {
		return time.Time{}, err
	}
	// configure request settings by specifying the first byte as
	// 00 011 011 (or 0x1B)
	// |  |   +-- client mode (3)
	// |  + ----- version (3)
	// + -------- leap year indicator, 0 no warning
	req := &packet{Settings: 0x1B}
	t1 := time.Now()
	// send time request
	if err := binary.Write(conn, binary.BigEndian, req); err != nil {
		return time.Time{}, err
	}

	// block to receive server response
	rsp := &packet{}
	if err := binary.Read(conn, binary.BigEndian, rsp); err != nil {
		return time.Time{}, err
	}
	t2 := intToTime(rsp.RxTimeSec, rsp.RxTimeFrac)
	t3 := intToTime(rsp.TxTimeSec, rsp.TxTimeFrac)
	t4 := time.Now()
	// On POSIX-compliant OS, time is expressed
	// using the Unix time epoch (or secs since year 1970).
	// NTP seconds are counted since 1900 and therefore must
	// be corrected with an epoch offset to convert NTP seconds
	// to Unix time by removing 70 yrs of seconds (1970-1900)
	// or 2208988800 seconds.
	//t2 - t1 -> deltaNet + deltaTime
	//t3 - t4 -> -deltaNet + deltaTime
	//如果deltaNet相同
	//判断t2 - t1 和  t3 - t4 绝对值的 倍数，如果超过2倍，认为无效(请求和回复延时严重不对称)
	d1 := t2.Sub(t1)
	d2 := t3.Sub(t4)
	rate := math.Abs(float64(d1)) / math.Abs(float64(d2))
	if rate >= 2 || rate <= 0.5 {
		return time.Time{}, ErrNetWorkDealy
	}
	delt := d1 + d2
	return t4.Add(delt / 2), nil
}

func intToTime(sec, frac uint32) time.Time {
	secs := int64(sec) - int64(ntpEpochOffset)
	nanos := (int64(frac) * 1e9) >> 32
	return time.Unix(secs, nanos)
}

//GetRealTime 向多个服务器请求时间，至少两个结果一致时取中间值的偏移
func GetRealTime(hosts []string) (time.Duration, error) {
	var offsets []time.Duration
	for _, host := range hosts {
		t, err := GetNtpTime(host)
		if err != nil {
			continue
		}
		offsets = append(offsets, time.Until(t))
		if len(offsets) >= 3 {
			break
		}
	}
	if len(offsets) == 0 {
		return 0, ErrNtpUnavailable
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	mid := offsets[len(offsets)/2]
	if len(offsets) > 1 && math.Abs(float64(offsets[len(offsets)-1]-offsets[0])) > float64(time.Second) {
		//服务器之间相差超过1秒，结果不可信
		return 0, ErrNetWorkDealy
	}
	return mid, nil
}

//GetRealTimeRetry 重试 retry 次，返回本地时间需要修正的偏移
func GetRealTimeRetry(hosts []string, retry int) (time.Duration, error) {
	var err error
	var dt time.Duration
	for i := 0; i < retry; i++ {
		dt, err = GetRealTime(hosts)
		if err == nil {
			return dt, nil
		}
	}
	return 0, err
}
