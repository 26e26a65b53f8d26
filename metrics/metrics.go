// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 执行器的计数与计时，使用 go-metrics 记录，通过 prometheus 输出
package metrics

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/33cn/timedpot/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gometrics "github.com/rcrowley/go-metrics"
)

var log = log15.New("module", "timedpot.metrics")

//Namespace 指标名前缀
var Namespace = "timedpot"

//Metrics 每个执行器实例一个，不使用全局的 DefaultRegistry
type Metrics struct {
	registry gometrics.Registry
}

//New new
func New() *Metrics {
	return &Metrics{registry: gometrics.NewRegistry()}
}

//Registry go-metrics registry
func (m *Metrics) Registry() gometrics.Registry {
	return m.registry
}

func (m *Metrics) name(parts ...string) string {
	return Namespace + "." + strings.Join(parts, ".")
}

//Mark 记录一次操作的结果，失败时同时按错误名计数
func (m *Metrics) Mark(op string, err error) {
	if err == nil {
		gometrics.GetOrRegisterCounter(m.name(op, "ok"), m.registry).Inc(1)
		return
	}
	gometrics.GetOrRegisterCounter(m.name(op, "err"), m.registry).Inc(1)
	gometrics.GetOrRegisterCounter(m.name(op, "err", errors.Cause(err).Error()), m.registry).Inc(1)
}

//Since 记录一次操作的耗时
func (m *Metrics) Since(op string, start time.Time) {
	gometrics.GetOrRegisterTimer(m.name(op, "time"), m.registry).UpdateSince(start)
}

//SetOpenPools 当前存在的奖池数目
func (m *Metrics) SetOpenPools(n int64) {
	gometrics.GetOrRegisterGauge(m.name("pools", "open"), m.registry).Update(n)
}

//Count 读取计数器的值
func (m *Metrics) Count(parts ...string) int64 {
	if c, ok := m.registry.Get(m.name(parts...)).(gometrics.Counter); ok {
		return c.Count()
	}
	return 0
}

//Gauge 读取 gauge 的值
func (m *Metrics) Gauge(parts ...string) int64 {
	if g, ok := m.registry.Get(m.name(parts...)).(gometrics.Gauge); ok {
		return g.Value()
	}
	return 0
}

type logger struct{}

func (logger) Printf(format string, v ...interface{}) {
	log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

//StartMetrics 根据配置周期性输出到日志
func (m *Metrics) StartMetrics(cfg *types.Metrics) {
	if cfg == nil || !cfg.EnableMetrics {
		log.Info("Metrics data is not enabled to emit")
		return
	}
	if cfg.LogInterval <= 0 {
		return
	}
	go gometrics.LogScaled(m.registry, time.Duration(cfg.LogInterval)*time.Second, time.Millisecond, logger{})
}

//Handler prometheus 格式输出
func (m *Metrics) Handler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(&collector{registry: m.registry})
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// 把 go-metrics 中的数据转为 prometheus 的指标
type collector struct {
	registry gometrics.Registry
}

func promName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, name)
}

//Describe 不预先声明，作为 unchecked collector 注册
func (c *collector) Describe(ch chan<- *prometheus.Desc) {
}

//Collect 遍历 registry
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	c.registry.Each(func(name string, i interface{}) {
		desc := prometheus.NewDesc(promName(name), name, nil, nil)
		switch metric := i.(type) {
		case gometrics.Counter:
			ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(metric.Count()))
		case gometrics.Gauge:
			ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(metric.Value()))
		case gometrics.Timer:
			t := metric.Snapshot()
			ps := t.Percentiles([]float64{0.5, 0.9, 0.99})
			quantiles := map[float64]float64{
				0.5:  time.Duration(ps[0]).Seconds(),
				0.9:  time.Duration(ps[1]).Seconds(),
				0.99: time.Duration(ps[2]).Seconds(),
			}
			ch <- prometheus.MustNewConstSummary(desc, uint64(t.Count()), time.Duration(t.Sum()).Seconds(), quantiles)
		}
	})
}
