// Command nlreplay decodes netlink datagrams, either replayed from a file
// of concatenated raw messages or, on linux, read live from an
// AF_NETLINK/NETLINK_ROUTE socket after requesting a link dump.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/prometheusx"
	"github.com/m-lab/go/rtx"

	"github.com/m-lab/netlink-codec/audit"
	"github.com/m-lab/netlink-codec/metrics"
	"github.com/m-lab/netlink-codec/nlenc"
	"github.com/m-lab/netlink-codec/nlmsg"
	"github.com/m-lab/netlink-codec/rtnl"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

var (
	inputFile = flag.String("input", "", "Decode concatenated raw netlink datagrams from this file instead of a live socket.")
	promPort  = flag.String("prom", ":9090", "Prometheus metrics export address and port.")
)

func main() {
	flag.Parse()
	flagx.ArgsFromEnv(flag.CommandLine)

	ctx := context.Background()
	promSrv := prometheusx.MustStartPrometheus(*promPort)
	defer promSrv.Shutdown(ctx)

	if *inputFile != "" {
		rtx.Must(replayFile(*inputFile), "failed to replay %s", *inputFile)
		return
	}
	rtx.Must(replayLinkDump(), "failed to read a live link dump")
}

// replayFile decodes every datagram concatenated in path, each prefixed by
// its own NetlinkHeader, stopping at the first truncated trailing message.
func replayFile(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	count := 0
	for len(data) > 0 {
		m, err := nlmsg.ParseBytes(data)
		if err != nil {
			metrics.ObserveParse(err, "datagram", "", 0)
			return err
		}
		logMessage(m)
		metrics.ObserveParse(nil, "", familyName(m), int(m.Header.Length))
		data = data[nlenc.Align4(int(m.Header.Length)):]
		count++
	}
	log.Printf("decoded %d messages from %s", count, path)
	return nil
}

func familyName(m *nlmsg.NetlinkMessage) string {
	switch m.Payload.(type) {
	case rtnl.Message:
		return "rtnl"
	case audit.Message:
		return "audit"
	}
	return "generic"
}

func logMessage(m *nlmsg.NetlinkMessage) {
	log.Printf("type=%d length=%d payload=%+v", m.Header.Type, m.Header.Length, m.Payload)
}

// replayLinkDump is implemented in nlreplay_linux.go for linux builds; on
// other platforms there is no real netlink socket to read from.
var replayLinkDump = replayLinkDumpUnsupported

func replayLinkDumpUnsupported() error {
	return fmt.Errorf("live socket mode is only supported on linux; use -input on %s", os.Getenv("GOOS"))
}
