// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package local

import (
	"testing"

	comdb "github.com/33cn/timedpot/common/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMainDB(t *testing.T) comdb.DB {
	db, err := comdb.NewDB("local", comdb.MemDBBackendStr, "", 0)
	require.NoError(t, err)
	return db
}

func TestLocalDBGetSet(t *testing.T) {
	maindb := newMainDB(t)
	require.NoError(t, maindb.Set([]byte("a"), []byte("1")))
	l := NewLocalDB(maindb, false)

	v, err := l.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	require.NoError(t, l.Set([]byte("a"), []byte("2")))
	require.NoError(t, l.Set([]byte("b"), []byte("3")))
	v, err = l.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)

	//未提交时主数据库不变
	v, err = maindb.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	require.NoError(t, l.Set([]byte("a"), nil))
	_, err = l.Get([]byte("a"))
	assert.Equal(t, comdb.ErrNotFoundInDb, err)
	kvs := l.KVs()
	require.Len(t, kvs, 2)
	assert.Equal(t, []byte("a"), kvs[0].Key)
	assert.Nil(t, kvs[0].Value)

	require.NoError(t, l.Commit(false))
	_, err = maindb.Get([]byte("a"))
	assert.Equal(t, comdb.ErrNotFoundInDb, err)
	v, err = maindb.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), v)
	assert.Empty(t, l.KVs())
}

func TestLocalDBRollback(t *testing.T) {
	maindb := newMainDB(t)
	l := NewLocalDB(maindb, false)
	require.NoError(t, l.Set([]byte("a"), []byte("1")))
	l.Rollback()
	_, err := l.Get([]byte("a"))
	assert.Equal(t, comdb.ErrNotFoundInDb, err)
	require.NoError(t, l.Commit(true))
	_, err = maindb.Get([]byte("a"))
	assert.Equal(t, comdb.ErrNotFoundInDb, err)
}

func TestLocalDBList(t *testing.T) {
	maindb := newMainDB(t)
	require.NoError(t, maindb.Set([]byte("key1"), []byte("v1")))
	require.NoError(t, maindb.Set([]byte("key4"), []byte("v4")))
	require.NoError(t, maindb.Set([]byte("other"), []byte("x")))
	l := NewLocalDB(maindb, false)
	require.NoError(t, l.Set([]byte("key2"), []byte("v2")))
	require.NoError(t, l.Set([]byte("key4"), nil))
	require.NoError(t, l.Set([]byte("key4x"), []byte("v4x")))

	values, err := l.List([]byte("key"), nil, 0, comdb.ListASC)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("v1"), []byte("v2"), []byte("v4x")}, values)

	values, err = l.List([]byte("key"), nil, 2, comdb.ListDESC)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("v4x"), []byte("v2")}, values)

	values, err = l.List([]byte("key"), []byte("key2"), 0, comdb.ListDESC)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("v1")}, values)

	values, err = l.List([]byte("key"), []byte("key1"), 1, comdb.ListASC)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("v2")}, values)
	assert.Equal(t, int64(3), l.PrefixCount([]byte("key")))

	ro := NewLocalDB(maindb, true)
	values, err = ro.List([]byte("key"), nil, 0, comdb.ListASC)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("v1"), []byte("v4")}, values)
	assert.Equal(t, int64(2), ro.PrefixCount([]byte("key")))
	assert.Panics(t, func() { ro.Set([]byte("a"), []byte("b")) })
}
