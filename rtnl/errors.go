package rtnl

import "github.com/m-lab/netlink-codec/nlmsg"

func nlmsgTruncated(format string, args ...interface{}) error {
	return nlmsg.Truncatedf(format, args...)
}

func nlmsgMalformed(format string, args ...interface{}) error {
	return nlmsg.Malformedf(format, args...)
}
