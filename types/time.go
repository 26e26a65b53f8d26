// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"sync/atomic"
	"time"
)

var deltaTime int64
var timeCalibration int32

// MaxTimeDelta 超过60s 不做修正
const MaxTimeDelta = 60 * int64(time.Second)

//SetFixTime 是否开启网络时间校准
func SetFixTime(openTimeCalibration bool) {
	var v int32
	if openTimeCalibration {
		v = 1
	}
	atomic.StoreInt32(&timeCalibration, v)
}

//IsFixTime 是否开启网络时间校准
func IsFixTime() bool {
	return atomic.LoadInt32(&timeCalibration) == 1
}

//SetTimeDelta realtime - localtime
//为了系统的安全，我们只做小范围时间错误的修复
func SetTimeDelta(dt int64) {
	if dt > MaxTimeDelta || dt < -MaxTimeDelta {
		dt = 0
	}
	atomic.StoreInt64(&deltaTime, dt)
}

//GetTimeDelta 当前的校准值
func GetTimeDelta() time.Duration {
	return time.Duration(atomic.LoadInt64(&deltaTime))
}

//Now 校准后的当前时间
func Now() time.Time {
	dt := time.Duration(atomic.LoadInt64(&deltaTime))
	return time.Now().Add(dt)
}
