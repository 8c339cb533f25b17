package snapshots

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricSaveCalls = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "multimap_snapshots_save_total",
			Help: "Number of snapshot save calls",
		},
	)
	metricSaveFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "multimap_snapshots_save_failed_total",
			Help: "Number of failed snapshot save calls",
		},
	)
	metricLoadCalls = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "multimap_snapshots_load_total",
			Help: "Number of snapshot load calls",
		},
	)
	metricLoadFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "multimap_snapshots_load_failed_total",
			Help: "Number of failed snapshot load calls",
		},
	)
	metricListCalls = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "multimap_snapshots_list_total",
			Help: "Number of snapshot list calls",
		},
	)
	metricListFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "multimap_snapshots_list_failed_total",
			Help: "Number of failed snapshot list calls",
		},
	)
	metricDeleteCalls = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "multimap_snapshots_delete_total",
			Help: "Number of snapshot delete calls",
		},
	)
	metricDeleteFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "multimap_snapshots_delete_failed_total",
			Help: "Number of failed snapshot delete calls",
		},
	)
)

func init() {
	prometheus.MustRegister(metricSaveCalls)
	prometheus.MustRegister(metricSaveFailed)
	prometheus.MustRegister(metricLoadCalls)
	prometheus.MustRegister(metricLoadFailed)
	prometheus.MustRegister(metricListCalls)
	prometheus.MustRegister(metricListFailed)
	prometheus.MustRegister(metricDeleteCalls)
	prometheus.MustRegister(metricDeleteFailed)
}
