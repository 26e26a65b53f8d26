// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"
	"strconv"

	dbm "github.com/33cn/timedpot/common/db"
	pty "github.com/33cn/timedpot/plugin/dapp/timedpot/types"
	"github.com/33cn/timedpot/types"
	"github.com/pkg/errors"
)

// DB 奖池记录
type DB struct {
	pty.Pool
}

// NewDB 新的奖池, 倒计时在第一次存款时开始
func NewDB(id, authority string, duration, createTime int64) *DB {
	p := &DB{}
	p.PoolID = id
	p.Authority = authority
	p.DurationSeconds = duration
	p.CreateTime = createTime
	p.GameActive = true
	return p
}

// GetKVSet 奖池记录的 kv
func (p *DB) GetKVSet() (kvset []*types.KeyValue) {
	value := types.Encode(&p.Pool)
	kvset = append(kvset, &types.KeyValue{Key: Key(p.PoolID), Value: value})
	return kvset
}

// Save 写入 db
func (p *DB) Save(db dbm.KV) error {
	for _, kv := range p.GetKVSet() {
		if err := db.Set(kv.Key, kv.Value); err != nil {
			return errors.Wrap(err, "save pool")
		}
	}
	return nil
}

// Delete 从 db 删除奖池记录, 地址可以被同一个创建者重新使用
func (p *DB) Delete(db dbm.KV) (kvset []*types.KeyValue, err error) {
	if err := db.Set(Key(p.PoolID), nil); err != nil {
		return nil, errors.Wrap(err, "delete pool")
	}
	return []*types.KeyValue{{Key: Key(p.PoolID)}}, nil
}

func poolPrefix() []byte {
	return []byte("mavl-timedpot-pool-")
}

// Key 奖池记录的 key
func Key(id string) (key []byte) {
	key = append(key, poolPrefix()...)
	key = append(key, id...)
	return key
}

func readPool(db dbm.KV, id string) (*DB, error) {
	data, err := db.Get(Key(id))
	if err == dbm.ErrNotFoundInDb {
		return nil, pty.ErrPoolNotFound
	}
	if err != nil {
		tlog.Error("readPool", "pool", id, "err", err)
		return nil, errors.Wrap(err, "read pool")
	}
	var p DB
	if err := types.Decode(data, &p.Pool); err != nil {
		tlog.Error("readPool decode", "pool", id, "err", err)
		return nil, err
	}
	return &p, nil
}

func eventPrefix(id string) []byte {
	return []byte("LODB-timedpot-event:" + id + ":")
}

func eventKey(id string, index int64) []byte {
	return []byte(fmt.Sprintf("LODB-timedpot-event:%s:%018d", id, index))
}

func eventSeqKey(id string) []byte {
	return []byte("LODB-timedpot-seq:" + id)
}

func lastEventIndex(db dbm.KV, id string) (int64, error) {
	data, err := db.Get(eventSeqKey(id))
	if err == dbm.ErrNotFoundInDb {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "read event seq")
	}
	index, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, errors.Wrap(types.ErrDecode, err.Error())
	}
	return index, nil
}

// saveEvent 写入事件索引，返回对应的 receipt log
// 事件不随奖池删除，同一个地址上的新奖池继续使用原来的序号
func saveEvent(db dbm.KV, ev *pty.PoolEvent) (*types.ReceiptLog, *types.KeyValue, error) {
	last, err := lastEventIndex(db, ev.PoolID)
	if err != nil {
		return nil, nil, err
	}
	ev.Index = last + 1
	ev.Name = types.GetLogName(ev.Ty)
	value := types.Encode(ev)
	key := eventKey(ev.PoolID, ev.Index)
	if err := db.Set(key, value); err != nil {
		return nil, nil, errors.Wrap(err, "save event")
	}
	if err := db.Set(eventSeqKey(ev.PoolID), []byte(strconv.FormatInt(ev.Index, 10))); err != nil {
		return nil, nil, errors.Wrap(err, "save event seq")
	}
	return &types.ReceiptLog{Ty: ev.Ty, Log: value}, &types.KeyValue{Key: key, Value: value}, nil
}
