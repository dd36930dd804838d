package conn

import (
	"github.com/VictoriaMetrics/metrics"
)

// --------------------------------------------------------------------------
// Connection metrics
// --------------------------------------------------------------------------

var (
	metricMessagesSent      = metrics.NewCounter(`docwire_conn_messages_sent_total`)
	metricMessagesReceived  = metrics.NewCounter(`docwire_conn_messages_received_total`)
	metricBytesWritten      = metrics.NewCounter(`docwire_conn_bytes_written_total`)
	metricBytesRead         = metrics.NewCounter(`docwire_conn_bytes_read_total`)
	metricReadTimeouts      = metrics.NewCounter(`docwire_conn_read_timeouts_total`)
	metricProtocolErrors    = metrics.NewCounter(`docwire_conn_protocol_errors_total`)
	metricConnectionsClosed = metrics.NewCounter(`docwire_conn_closed_total`)
)
