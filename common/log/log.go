// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 日志相关接口以及函数
package log

import (
	"io"
	"os"

	"github.com/33cn/timedpot/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 文件日志只初始化一次，重复设置时复用，防止同一个文件被打开多次
var rotateLogger *lumberjack.Logger

//SetLogLevel 设置控制台日志输出级别
func SetLogLevel(logLevel string) {
	log15.Root().SetHandler(getConsoleLogHandler(colorable.NewColorableStdout(), logLevel))
}

//SetFileLog 设置文件日志和控制台日志信息
func SetFileLog(log *types.Log) {
	if log == nil {
		log = &types.Log{LogFile: "logs/timedpot.log"}
	}
	fillDefaultValue(log)
	if log.LogFile == "" {
		SetLogLevel(log.LogConsoleLevel)
		return
	}
	log15.Root().SetHandler(log15.MultiHandler(getConsoleLogHandler(colorable.NewColorableStdout(), log.LogConsoleLevel), getFileLogHandler(log)))
}

// 保证默认性况下为error级别，防止打印太多日志
func fillDefaultValue(log *types.Log) {
	if log.Loglevel == "" {
		log.Loglevel = log15.LvlError.String()
	}
	if log.LogConsoleLevel == "" {
		log.LogConsoleLevel = log15.LvlError.String()
	}
}

func isWindows() bool {
	return os.PathSeparator == '\\' && os.PathListSeparator == ';'
}

func getConsoleLogHandler(w io.Writer, logLevel string) log15.Handler {
	format := log15.TerminalFormat()
	if isWindows() {
		format = log15.LogfmtFormat()
	}
	return log15.LvlFilterHandler(getLevel(logLevel), log15.StreamHandler(w, format))
}

func getFileLogHandler(log *types.Log) log15.Handler {
	if rotateLogger == nil || rotateLogger.Filename != log.LogFile {
		rotateLogger = &lumberjack.Logger{
			Filename:   log.LogFile,
			MaxSize:    int(log.MaxFileSize),
			MaxBackups: int(log.MaxBackups),
			MaxAge:     int(log.MaxAge),
			LocalTime:  log.LocalTime,
			Compress:   log.Compress,
		}
	}
	fileh := log15.StreamHandler(rotateLogger, log15.LogfmtFormat())
	// 增加打印调用源文件、方法和代码行的判断
	if log.CallerFile {
		fileh = log15.CallerFileHandler(fileh)
	}
	if log.CallerFunction {
		fileh = log15.CallerFuncHandler(fileh)
	}
	return log15.LvlFilterHandler(getLevel(log.Loglevel), fileh)
}

func getLevel(lvlString string) log15.Lvl {
	lvl, err := log15.LvlFromString(lvlString)
	if err != nil {
		// 日志级别配置不正确时默认为error级别
		return log15.LvlError
	}
	return lvl
}

//New new
func New(ctx ...interface{}) log15.Logger {
	return log15.Root().New(ctx...)
}
