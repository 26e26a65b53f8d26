// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient 实现JSON rpc客户端请求功能
package jsonclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// JSONClient a object of jsonclient
type JSONClient struct {
	url    string
	prefix string
	client *http.Client
}

var requestID uint64

func addPrefix(prefix, name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return prefix + "." + name
}

// NewJSONClient produce a json object, 方法名不带服务名时默认使用 Timedpot
func NewJSONClient(url string) (*JSONClient, error) {
	return New("Timedpot", url)
}

// New produce a jsonclient by perfix and url
func New(prefix, url string) (*JSONClient, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return &JSONClient{
		url:    url,
		prefix: prefix,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type clientRequest struct {
	Method string         `json:"method"`
	Params [1]interface{} `json:"params"`
	ID     uint64         `json:"id"`
}

type clientResponse struct {
	ID     uint64           `json:"id"`
	Result *json.RawMessage `json:"result"`
	Error  interface{}      `json:"error"`
}

// Call jsonclinet call method
func (client *JSONClient) Call(method string, params, resp interface{}) error {
	method = addPrefix(client.prefix, method)
	req := &clientRequest{Method: method, ID: atomic.AddUint64(&requestID, 1)}
	req.Params[0] = params
	data, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}
	postresp, err := client.client.Post(client.url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return errors.Wrap(err, "post "+client.url)
	}
	defer postresp.Body.Close()
	b, err := io.ReadAll(postresp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if postresp.StatusCode != http.StatusOK {
		return fmt.Errorf("http status %d: %s", postresp.StatusCode, strings.TrimSpace(string(b)))
	}
	cresp := &clientResponse{}
	if err := json.Unmarshal(b, &cresp); err != nil {
		return errors.Wrap(err, "unmarshal response")
	}
	if cresp.Error != nil {
		x, ok := cresp.Error.(string)
		if !ok {
			return fmt.Errorf("invalid error %v", cresp.Error)
		}
		if x == "" {
			x = "unspecified error"
		}
		return errors.New(x)
	}
	if cresp.Result == nil {
		return errors.New("Empty result")
	}
	if resp == nil {
		return nil
	}
	return json.Unmarshal(*cresp.Result, resp)
}
