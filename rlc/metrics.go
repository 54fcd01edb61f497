// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

package rlc

import "github.com/prometheus/client_golang/prometheus"

// entityMetrics is the set of per-bearer counters exported by an Entity,
// the RLC-layer counterpart to buffer.Pool's gauge/counter pair.
type entityMetrics struct {
	sdusTX       prometheus.Counter
	sdusRX       prometheus.Counter
	pdusTX       prometheus.Counter
	pdusRX       prometheus.Counter
	pdusDiscarded prometheus.Counter
}

func newEntityMetrics(tag string) *entityMetrics {
	labels := prometheus.Labels{"bearer": tag}
	return &entityMetrics{
		sdusTX: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "rlc_sdus_transmitted_total",
			Help:        "SDUs accepted from the upper layer for transmission.",
			ConstLabels: labels,
		}),
		sdusRX: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "rlc_sdus_delivered_total",
			Help:        "SDUs reassembled and delivered to the upper layer.",
			ConstLabels: labels,
		}),
		pdusTX: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "rlc_pdus_sent_total",
			Help:        "PDUs handed to the lower layer.",
			ConstLabels: labels,
		}),
		pdusRX: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "rlc_pdus_received_total",
			Help:        "PDUs accepted from the lower layer.",
			ConstLabels: labels,
		}),
		pdusDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "rlc_pdus_discarded_total",
			Help:        "Received PDUs dropped as duplicate or out-of-window arrivals, or whose handling dropped an orphaned SDU segment.",
			ConstLabels: labels,
		}),
	}
}

// Collectors returns the metrics for registration with a
// prometheus.Registerer.
func (m *entityMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.sdusTX, m.sdusRX, m.pdusTX, m.pdusRX, m.pdusDiscarded}
}
