// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// coin conversation
const (
	Coin    uint64 = 1e8
	MaxCoin uint64 = 1e17
)

// receipt ty
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

// ledger log ty, 与 chain33 保持一致
const (
	TyLogReserved        = 0
	TyLogErr             = 1
	TyLogFee             = 2
	TyLogTransfer        = 3
	TyLogGenesis         = 4
	TyLogDeposit         = 5
	TyLogExecTransfer    = 6
	TyLogExecWithdraw    = 7
	TyLogExecDeposit     = 8
	TyLogGenesisTransfer = 11
)

var logName = map[int32]string{
	TyLogReserved:        "LogReserved",
	TyLogErr:             "LogErr",
	TyLogFee:             "LogFee",
	TyLogTransfer:        "LogTransfer",
	TyLogGenesis:         "LogGenesis",
	TyLogDeposit:         "LogDeposit",
	TyLogExecTransfer:    "LogExecTransfer",
	TyLogExecWithdraw:    "LogExecWithdraw",
	TyLogExecDeposit:     "LogExecDeposit",
	TyLogGenesisTransfer: "LogGenesisTransfer",
}

// RegisterLogName lets an executor name its own log types
func RegisterLogName(ty int32, name string) {
	if _, ok := logName[ty]; ok {
		panic("log ty registered twice")
	}
	logName[ty] = name
}

// GetLogName name of a log ty, "LogUnknown" when not registered
func GetLogName(ty int32) string {
	if name, ok := logName[ty]; ok {
		return name
	}
	return "LogUnknown"
}
