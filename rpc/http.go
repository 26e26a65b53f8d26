// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/rs/cors"
)

// HTTPConn adapt HTTP connection to ReadWriteCloser
type HTTPConn struct {
	in  io.Reader
	out io.Writer
}

func (c *HTTPConn) Read(p []byte) (n int, err error)  { return c.in.Read(p) }
func (c *HTTPConn) Write(d []byte) (n int, err error) { return c.out.Write(d) }

// Close 请求结束由 http 框架关闭
func (c *HTTPConn) Close() error { return nil }

type jsonrpcHandler struct {
	s *rpc.Server
}

func (h *jsonrpcHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	serverCodec := jsonrpc.NewServerCodec(&HTTPConn{in: r.Body, out: w})
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := h.s.ServeRequest(serverCodec); err != nil {
		rlog.Debug("Error while serving JSON request", "err", err)
	}
}

// Handler 白名单和限流之后再交给路由, 支持跨域
func (s *Server) Handler() http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.checkIPWhitelist(ip) {
			rlog.Error("HandlerFunc", "remote ip not in whitelist", ip)
			http.Error(w, "reject", http.StatusForbidden)
			return
		}
		if !s.allow(ip) {
			rlog.Debug("HandlerFunc rate limit", "ip", ip)
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		s.mux.ServeHTTP(w, r)
	})
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(inner)
}
