// Package metrics defines the prometheus metric types the codec and its
// consumers (cmd/nlreplay, integration tests) use to record parse outcomes.
// The codec itself stays dependency-light and never calls these directly;
// callers wrap a ParseBytes/Emit call with ObserveParse instead.
package metrics

import (
	"errors"

	"github.com/m-lab/netlink-codec/nlmsg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParseErrorTotal counts codec parse failures by ErrorKind and the
	// layer (header, nla, family) that reported them.
	ParseErrorTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netlink_codec_parse_errors_total",
			Help: "The total number of netlink message parse failures.",
		}, []string{"kind", "layer"})

	// MessagesParsedTotal counts successfully parsed messages by family
	// name, as registered via nlmsg.RegisterFamily ("rtnl", "audit"), or
	// "generic" for NLMSG_NOOP/DONE/OVERRUN/ERROR and unrecognised types.
	MessagesParsedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netlink_codec_messages_parsed_total",
			Help: "The total number of netlink messages successfully parsed, by family.",
		}, []string{"family"})

	// MessageSizeHistogram tracks the wire size of parsed datagrams.
	MessageSizeHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netlink_codec_message_size_bytes",
			Help:    "Distribution of parsed netlink datagram sizes in bytes.",
			Buckets: prometheus.ExponentialBuckets(16, 2, 12),
		},
	)
)

// ObserveParse records the outcome of a single nlmsg.ParseBytes call: on
// error it increments ParseErrorTotal labeled by the error's Kind (or
// "unknown" if it is not a *nlmsg.CodecError) and the given layer; on
// success it increments MessagesParsedTotal labeled by family and records
// size in MessageSizeHistogram.
func ObserveParse(err error, layer string, family string, size int) {
	if err != nil {
		kind := "unknown"
		var ce *nlmsg.CodecError
		if errors.As(err, &ce) {
			kind = ce.Kind.String()
		}
		ParseErrorTotal.With(prometheus.Labels{"kind": kind, "layer": layer}).Inc()
		return
	}
	MessagesParsedTotal.With(prometheus.Labels{"family": family}).Inc()
	MessageSizeHistogram.Observe(float64(size))
}
