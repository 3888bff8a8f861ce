package rtnl

import (
	"github.com/m-lab/netlink-codec/nlenc"
	"github.com/m-lab/netlink-codec/nlmsg"
)

// LinkInfo is the decoded, nested IFLA_LINKINFO attribute. IFLA_INFO_DATA's
// shape depends on the sibling IFLA_INFO_KIND string, so it is decoded in
// a second pass once InfoKind is known; Vlan/Bridge are populated only when
// InfoKind matches a recognised driver, and Data always holds the raw bytes
// regardless, so an unknown kind still round-trips.
type LinkInfo struct {
	InfoKind   string
	Data       []byte
	Vlan       *VlanInfo
	Bridge     *BridgeInfo
	SlaveKind  string
	SlaveData  []byte
}

// Kind implements nlmsg.Nla.
func (i LinkInfo) Kind() uint16 { return IFLA_LINKINFO }

// Flags implements nlmsg.FlaggedNla: IFLA_LINKINFO is always nested.
func (i LinkInfo) Flags() uint16 { return nlmsg.NLA_F_NESTED }

func (i LinkInfo) subAttrs() []nlmsg.Nla {
	var attrs []nlmsg.Nla
	if i.InfoKind != "" {
		attrs = append(attrs, infoKindAttr(i.InfoKind))
	}
	if len(i.Data) > 0 {
		attrs = append(attrs, infoDataAttr(i.Data))
	}
	if i.SlaveKind != "" {
		attrs = append(attrs, infoSlaveKindAttr(i.SlaveKind))
	}
	if len(i.SlaveData) > 0 {
		attrs = append(attrs, infoSlaveDataAttr(i.SlaveData))
	}
	return attrs
}

func (i LinkInfo) ValueLen() int { return nlmsg.NlasLen(i.subAttrs()) }

func (i LinkInfo) EmitValue(b []byte) { nlmsg.EmitNlas(i.subAttrs(), b) }

type infoKindAttr string

func (a infoKindAttr) Kind() uint16       { return IFLA_INFO_KIND }
func (a infoKindAttr) ValueLen() int      { return len(a) + 1 }
func (a infoKindAttr) EmitValue(b []byte) { copy(b, nlenc.Bytes(string(a))) }

type infoSlaveKindAttr string

func (a infoSlaveKindAttr) Kind() uint16       { return IFLA_INFO_SLAVE_KIND }
func (a infoSlaveKindAttr) ValueLen() int      { return len(a) + 1 }
func (a infoSlaveKindAttr) EmitValue(b []byte) { copy(b, nlenc.Bytes(string(a))) }

type infoDataAttr []byte

func (a infoDataAttr) Kind() uint16       { return IFLA_INFO_DATA }
func (a infoDataAttr) ValueLen() int      { return len(a) }
func (a infoDataAttr) EmitValue(b []byte) { copy(b, a) }
func (a infoDataAttr) Flags() uint16      { return nlmsg.NLA_F_NESTED }

type infoSlaveDataAttr []byte

func (a infoSlaveDataAttr) Kind() uint16       { return IFLA_INFO_SLAVE_DATA }
func (a infoSlaveDataAttr) ValueLen() int      { return len(a) }
func (a infoSlaveDataAttr) EmitValue(b []byte) { copy(b, a) }
func (a infoSlaveDataAttr) Flags() uint16      { return nlmsg.NLA_F_NESTED }

// VlanInfo is the typed decoding of IFLA_INFO_DATA when IFLA_INFO_KIND ==
// "vlan".
type VlanInfo struct {
	ID    uint16
	Flags uint32
}

// BridgeInfo is the typed decoding of a representative subset of
// IFLA_INFO_DATA when IFLA_INFO_KIND == "bridge".
type BridgeInfo struct {
	ForwardDelay uint32
	HelloTime    uint32
	MaxAge       uint32
	StpState     uint32
}

// parseLinkInfo decodes a nested IFLA_LINKINFO value with the two-pass
// rule: first resolve IFLA_INFO_KIND, then decode IFLA_INFO_DATA with
// that context.
func parseLinkInfo(b []byte) (LinkInfo, error) {
	var info LinkInfo
	var dataRaw []byte

	it := nlmsg.IterNlas(b)
	for {
		buf, ok, err := it.Next()
		if err != nil {
			return LinkInfo{}, err
		}
		if !ok {
			break
		}
		switch buf.Kind() {
		case IFLA_INFO_KIND:
			s, ok := nlenc.String(buf.Value())
			if !ok {
				return LinkInfo{}, nlmsgMalformed("IFLA_INFO_KIND is not valid UTF-8")
			}
			info.InfoKind = s
		case IFLA_INFO_DATA:
			dataRaw = append([]byte(nil), buf.Value()...)
		case IFLA_INFO_SLAVE_KIND:
			s, ok := nlenc.String(buf.Value())
			if !ok {
				return LinkInfo{}, nlmsgMalformed("IFLA_INFO_SLAVE_KIND is not valid UTF-8")
			}
			info.SlaveKind = s
		case IFLA_INFO_SLAVE_DATA:
			info.SlaveData = append([]byte(nil), buf.Value()...)
		}
	}

	info.Data = dataRaw
	if dataRaw == nil {
		return info, nil
	}

	switch info.InfoKind {
	case linkKindVlan:
		if vlan, err := parseVlanInfo(dataRaw); err == nil {
			info.Vlan = &vlan
		}
	case linkKindBridge:
		if br, err := parseBridgeInfo(dataRaw); err == nil {
			info.Bridge = &br
		}
	}
	return info, nil
}

func parseVlanInfo(b []byte) (VlanInfo, error) {
	var v VlanInfo
	it := nlmsg.IterNlas(b)
	for {
		buf, ok, err := it.Next()
		if err != nil {
			return v, err
		}
		if !ok {
			break
		}
		switch buf.Kind() {
		case IFLA_VLAN_ID:
			if len(buf.Value()) >= 2 {
				v.ID = nlenc.Uint16(buf.Value())
			}
		case IFLA_VLAN_FLAGS:
			if len(buf.Value()) >= 4 {
				v.Flags = nlenc.Uint32(buf.Value())
			}
		}
	}
	return v, nil
}

func parseBridgeInfo(b []byte) (BridgeInfo, error) {
	var br BridgeInfo
	it := nlmsg.IterNlas(b)
	for {
		buf, ok, err := it.Next()
		if err != nil {
			return br, err
		}
		if !ok {
			break
		}
		if len(buf.Value()) < 4 {
			continue
		}
		v := nlenc.Uint32(buf.Value())
		switch buf.Kind() {
		case IFLA_BR_FORWARD_DELAY:
			br.ForwardDelay = v
		case IFLA_BR_HELLO_TIME:
			br.HelloTime = v
		case IFLA_BR_MAX_AGE:
			br.MaxAge = v
		case IFLA_BR_STP_STATE:
			br.StpState = v
		}
	}
	return br, nil
}
