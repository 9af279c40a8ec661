package minitel

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// LinkMetrics contains the counters of a Minitel link.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type LinkMetrics struct {
	// BytesSent counts bytes written to the line.
	BytesSent *xsync.Counter
	// BytesReceived counts bytes read from the line.
	BytesReceived *xsync.Counter

	// CallCount indicates the number of command/acknowledgement calls.
	CallCount atomic.Uint64
	// CallTimeoutCount indicates the calls that got a short reply.
	CallTimeoutCount atomic.Uint64
	// TransportErrCount indicates read and write failures of the line.
	TransportErrCount atomic.Uint64
	// SpeedChangeCount indicates the line rate changes.
	SpeedChangeCount atomic.Uint32
}

func newLinkMetrics() *LinkMetrics {
	return &LinkMetrics{
		BytesSent:     xsync.NewCounter(),
		BytesReceived: xsync.NewCounter(),
	}
}

func (m *LinkMetrics) addBytesSent(n int) {
	m.BytesSent.Add(int64(n))
}

func (m *LinkMetrics) incBytesReceived() {
	m.BytesReceived.Inc()
}

func (m *LinkMetrics) incCallCount() {
	m.CallCount.Add(1)
}

func (m *LinkMetrics) incCallTimeoutCount() {
	m.CallTimeoutCount.Add(1)
}

func (m *LinkMetrics) incTransportErrCount() {
	m.TransportErrCount.Add(1)
}

func (m *LinkMetrics) incSpeedChangeCount() {
	m.SpeedChangeCount.Add(1)
}
