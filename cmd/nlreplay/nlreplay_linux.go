//go:build linux

package main

import (
	"log"
	"os"

	"golang.org/x/sys/unix"

	"github.com/m-lab/netlink-codec/metrics"
	"github.com/m-lab/netlink-codec/nlenc"
	"github.com/m-lab/netlink-codec/nlmsg"
	"github.com/m-lab/netlink-codec/rtnl"
)

func init() {
	replayLinkDump = replayLinkDumpLinux
}

// replayLinkDumpLinux opens a NETLINK_ROUTE socket, sends a GetLink dump
// request, and decodes the resulting multipart reply stream until it sees
// NLMSG_DONE.
func replayLinkDumpLinux() error {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW, unix.NETLINK_ROUTE)
	if err != nil {
		return nlmsg.WrapIo(err)
	}
	defer unix.Close(fd)

	if err := unix.Bind(fd, &unix.SockaddrNetlink{Family: unix.AF_NETLINK}); err != nil {
		return nlmsg.WrapIo(err)
	}

	req := rtnl.NewGetLinkDump()
	req.Header.Sequence = 1
	req.Header.Port = uint32(os.Getpid())
	req.Finalize()
	out := make([]byte, req.Header.Length)
	if _, err := req.ToBytes(out); err != nil {
		return err
	}
	if err := unix.Sendto(fd, out, 0, &unix.SockaddrNetlink{Family: unix.AF_NETLINK}); err != nil {
		return nlmsg.WrapIo(err)
	}

	buf := make([]byte, os.Getpagesize())
	for {
		n, _, err := unix.Recvfrom(fd, buf, 0)
		if err != nil {
			return nlmsg.WrapIo(err)
		}
		data := buf[:n]
		done, err := decodeMultipart(data)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// decodeMultipart decodes every datagram in one recvfrom'd buffer and
// reports whether NLMSG_DONE terminated the stream.
func decodeMultipart(data []byte) (bool, error) {
	for len(data) > 0 {
		m, err := nlmsg.ParseBytes(data)
		if err != nil {
			metrics.ObserveParse(err, "datagram", "", 0)
			return false, err
		}
		log.Printf("type=%d length=%d payload=%+v", m.Header.Type, m.Header.Length, m.Payload)
		metrics.ObserveParse(nil, "", familyName(m), int(m.Header.Length))
		if _, ok := m.Payload.(nlmsg.DoneMessage); ok {
			return true, nil
		}
		data = data[nlenc.Align4(int(m.Header.Length)):]
	}
	return false, nil
}
