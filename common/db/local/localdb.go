// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package local 在主数据库之上的一层写缓存，一次操作的所有写入在 Commit 时作为一个 batch 落盘
package local

import (
	"bytes"
	"sort"
	"sync"

	"github.com/33cn/timedpot/common"
	comdb "github.com/33cn/timedpot/common/db"
	"github.com/33cn/timedpot/types"
)

// DB local db for store key value in local
type DB struct {
	//value == nil 表示 key 已经删除
	cache    map[string][]byte
	maindb   comdb.DB
	mu       sync.RWMutex
	readOnly bool
}

// NewLocalDB new local db
func NewLocalDB(maindb comdb.DB, readOnly bool) *DB {
	if readOnly {
		//只读模式不需要cache，比如查询，可以使用该localdb，减少内存开销
		return &DB{
			maindb:   maindb,
			readOnly: true,
		}
	}
	return &DB{
		cache:  make(map[string][]byte),
		maindb: maindb,
	}
}

// Get get value from local db
func (l *DB) Get(key []byte) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if value, ok := l.cache[string(key)]; ok {
		if value == nil {
			return nil, comdb.ErrNotFoundInDb
		}
		return value, nil
	}
	return l.maindb.Get(key)
}

// Set set key value to local db, value == nil 代表删除
func (l *DB) Set(key []byte, value []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.readOnly {
		panic("set local db in read only mode")
	}
	if value == nil {
		l.cache[string(key)] = nil
		return nil
	}
	l.cache[string(key)] = common.CopyBytes(value)
	return nil
}

type kv struct {
	key   string
	value []byte
}

// 合并 cache 与主数据库中 prefix 下的全部数据并排序
func (l *DB) merged(prefix []byte) []kv {
	all := make(map[string][]byte)
	it := l.maindb.Iterator(prefix, nil, false)
	for it.Rewind(); it.Valid(); it.Next() {
		all[string(it.Key())] = it.ValueCopy()
	}
	it.Close()
	for k, v := range l.cache {
		if !bytes.HasPrefix([]byte(k), prefix) {
			continue
		}
		if v == nil {
			delete(all, k)
			continue
		}
		all[k] = v
	}
	list := make([]kv, 0, len(all))
	for k, v := range all {
		list = append(list, kv{k, v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].key < list[j].key })
	return list
}

// List 从数据库中查询数据列表，包含 cache 中尚未提交的修改
func (l *DB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.readOnly {
		return comdb.NewListHelper(l.maindb).List(prefix, key, count, direction), nil
	}
	list := l.merged(prefix)
	if direction == comdb.ListDESC {
		for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
			list[i], list[j] = list[j], list[i]
		}
	}
	var values [][]byte
	skey := string(key)
	for _, item := range list {
		if len(key) > 0 {
			if direction == comdb.ListDESC && item.key >= skey {
				continue
			}
			if direction != comdb.ListDESC && item.key <= skey {
				continue
			}
		}
		values = append(values, item.value)
		if int32(len(values)) == count {
			break
		}
	}
	return values, nil
}

// PrefixCount 从数据库中查询指定前缀的key的数量
func (l *DB) PrefixCount(prefix []byte) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.readOnly {
		return comdb.NewListHelper(l.maindb).PrefixCount(prefix)
	}
	return int64(len(l.merged(prefix)))
}

// KVs 尚未提交的修改，按 key 排序
func (l *DB) KVs() []*types.KeyValue {
	l.mu.RLock()
	defer l.mu.RUnlock()
	kvs := make([]*types.KeyValue, 0, len(l.cache))
	for k, v := range l.cache {
		kvs = append(kvs, &types.KeyValue{Key: []byte(k), Value: v})
	}
	sort.Slice(kvs, func(i, j int) bool { return bytes.Compare(kvs[i].Key, kvs[j].Key) < 0 })
	return kvs
}

// Rollback 丢弃所有尚未提交的修改
func (l *DB) Rollback() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.readOnly {
		return
	}
	l.cache = make(map[string][]byte)
}

// Commit 把 cache 作为一个 batch 写入主数据库
func (l *DB) Commit(sync bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.readOnly || len(l.cache) == 0 {
		return nil
	}
	batch := l.maindb.NewBatch(sync)
	for k, v := range l.cache {
		if v == nil {
			batch.Delete([]byte(k))
			continue
		}
		batch.Set([]byte(k), v)
	}
	if err := batch.Write(); err != nil {
		return err
	}
	l.cache = make(map[string][]byte)
	return nil
}
