package metrics_test

import (
	"testing"

	"github.com/m-lab/netlink-codec/metrics"
	"github.com/m-lab/netlink-codec/nlmsg"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if m.Counter == nil {
		t.Fatalf("metric has no Counter field")
	}
	return m.Counter.GetValue()
}

func TestObserveParseRecordsError(t *testing.T) {
	before := counterValue(t, metrics.ParseErrorTotal.WithLabelValues("truncated", "header"))
	metrics.ObserveParse(nlmsg.ErrTruncated, "header", "", 0)
	after := counterValue(t, metrics.ParseErrorTotal.WithLabelValues("truncated", "header"))
	if after != before+1 {
		t.Errorf("ParseErrorTotal{truncated,header} = %v, want %v", after, before+1)
	}
}

func TestObserveParseRecordsSuccess(t *testing.T) {
	before := counterValue(t, metrics.MessagesParsedTotal.WithLabelValues("rtnl"))
	metrics.ObserveParse(nil, "", "rtnl", 112)
	after := counterValue(t, metrics.MessagesParsedTotal.WithLabelValues("rtnl"))
	if after != before+1 {
		t.Errorf("MessagesParsedTotal{rtnl} = %v, want %v", after, before+1)
	}
}
