// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonclient

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 按方法名返回固定结果
func newFakeServer(t *testing.T) *httptest.Server {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string         `json:"method"`
			Params [1]interface{} `json:"params"`
			ID     uint64         `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		resp := map[string]interface{}{"id": req.ID, "result": nil, "error": nil}
		switch req.Method {
		case "Timedpot.PoolAddress":
			resp["result"] = "1PoolAddr"
		case "Timedpot.GetPool":
			resp["result"] = map[string]interface{}{"poolID": "1PoolAddr", "potAmount": 5}
		case "Timedpot.Claim":
			resp["error"] = "ErrGameNotEnded"
		case "Timedpot.Empty":
		default:
			resp["error"] = "rpc: can't find method " + req.Method
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCall(t *testing.T) {
	ts := newFakeServer(t)
	client, err := NewJSONClient(strings.TrimPrefix(ts.URL, "http://"))
	require.NoError(t, err)

	var addr string
	require.NoError(t, client.Call("PoolAddress", nil, &addr))
	assert.Equal(t, "1PoolAddr", addr)

	err = client.Call("Timedpot.Claim", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "ErrGameNotEnded", err.Error())

	err = client.Call("Empty", nil, nil)
	assert.Equal(t, "Empty result", err.Error())
}

func TestRpcCtx(t *testing.T) {
	ts := newFakeServer(t)
	var out, errOut bytes.Buffer

	var pool struct {
		PoolID    string `json:"poolID"`
		PotAmount uint64 `json:"potAmount"`
	}
	ctx := NewRpcCtx(ts.URL, "Timedpot.GetPool", nil, &pool)
	ctx.SetOutput(&out, &errOut)
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		return res.(*struct {
			PoolID    string `json:"poolID"`
			PotAmount uint64 `json:"potAmount"`
		}).PotAmount, nil
	})
	ctx.Run()
	assert.Equal(t, "5\n", out.String())
	assert.Empty(t, errOut.String())

	out.Reset()
	ctx = NewRpcCtx(ts.URL, "Timedpot.PoolAddress", nil, nil)
	ctx.SetOutput(&out, &errOut)
	ctx.RunWithoutMarshal()
	assert.Equal(t, "1PoolAddr\n", out.String())

	ctx = NewRpcCtx(ts.URL, "Timedpot.Claim", nil, nil)
	ctx.SetOutput(&out, &errOut)
	ctx.Run()
	assert.Equal(t, "ErrGameNotEnded\n", errOut.String())
}
