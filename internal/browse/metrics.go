// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageViews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partcatalog_browse_page_views_total",
			Help: "Pages served, by page kind",
		},
		[]string{"page"},
	)

	RowsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partcatalog_browse_rows_served_total",
			Help: "Catalog rows rendered, by table",
		},
		[]string{"table"},
	)

	TableReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partcatalog_browse_table_reloads_total",
			Help: "CSV reloads triggered by file changes, by result",
		},
		[]string{"result"},
	)

	TablesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "partcatalog_browse_tables_loaded",
			Help: "Number of CSV tables currently loaded",
		},
	)
)
