package rtnl

import "github.com/m-lab/netlink-codec/nlmsg"

func init() {
	nlmsg.RegisterFamily("rtnl", isRtnlType, decode)
}

func isRtnlType(t uint16) bool {
	switch {
	case t >= RTM_NEWLINK && t <= RTM_SETLINK:
		return true
	case t >= RTM_NEWADDR && t <= RTM_GETADDR:
		return true
	case t >= RTM_NEWROUTE && t <= RTM_GETROUTE:
		return true
	case t >= RTM_NEWNEIGH && t <= RTM_GETNEIGH:
		return true
	}
	return false
}

// body is the minimal contract a family-message type needs to back a
// Message: its own Len/Emit. The RTM_* verb (New/Del/Get/Set) and the
// resulting wire type code live on Message, not on body, because the same
// LinkMessage/AddressMessage/etc. struct serves every verb for its family.
type body interface {
	Len() int
	Emit(b []byte)
}

// Message is an rtnetlink payload: a Body value (LinkMessage,
// AddressMessage, RouteMessage, NeighbourMessage, or opaque bytes for an
// unrecognised message_type within the rtnl family ranges) paired with the
// RTM_* wire code that selects which verb it represents.
type Message struct {
	Type uint16
	Body body
}

func (m Message) Len() int           { return m.Body.Len() }
func (m Message) Emit(b []byte)      { m.Body.Emit(b) }
func (m Message) MessageType() uint16 { return m.Type }

type opaqueBody []byte

func (b opaqueBody) Len() int      { return len(b) }
func (b opaqueBody) Emit(dst []byte) { copy(dst, b) }

// NewLink, DelLink, GetLink, SetLink build the four verbs rtnetlink
// defines for link administration.
func NewLink(m LinkMessage) Message { return Message{RTM_NEWLINK, m} }
func DelLink(m LinkMessage) Message { return Message{RTM_DELLINK, m} }
func GetLink(m LinkMessage) Message { return Message{RTM_GETLINK, m} }
func SetLink(m LinkMessage) Message { return Message{RTM_SETLINK, m} }

// NewAddress, DelAddress, GetAddress build the three verbs rtnetlink
// defines for address administration; there is no RTM_SETADDR.
func NewAddress(m AddressMessage) Message { return Message{RTM_NEWADDR, m} }
func DelAddress(m AddressMessage) Message { return Message{RTM_DELADDR, m} }
func GetAddress(m AddressMessage) Message { return Message{RTM_GETADDR, m} }

// NewRoute, DelRoute, GetRoute build the three verbs rtnetlink defines for
// route administration; there is no RTM_SETROUTE.
func NewRoute(m RouteMessage) Message { return Message{RTM_NEWROUTE, m} }
func DelRoute(m RouteMessage) Message { return Message{RTM_DELROUTE, m} }
func GetRoute(m RouteMessage) Message { return Message{RTM_GETROUTE, m} }

// NewNeighbour, DelNeighbour, GetNeighbour build the three verbs rtnetlink
// defines for neighbour administration; there is no RTM_SETNEIGH.
func NewNeighbour(m NeighbourMessage) Message { return Message{RTM_NEWNEIGH, m} }
func DelNeighbour(m NeighbourMessage) Message { return Message{RTM_DELNEIGH, m} }
func GetNeighbour(m NeighbourMessage) Message { return Message{RTM_GETNEIGH, m} }

// NewGetLinkDump builds a Finalized NetlinkMessage requesting a full link
// dump (NLM_F_REQUEST|NLM_F_DUMP over RTM_GETLINK with a zeroed
// LinkHeader), the request cmd/nlreplay sends over a real socket.
func NewGetLinkDump() *nlmsg.NetlinkMessage {
	m := nlmsg.NewMessage(GetLink(LinkMessage{}))
	m.Header.Flags = nlmsg.NLM_F_REQUEST | nlmsg.NLM_F_DUMP
	m.Finalize()
	return m
}

func decode(t uint16, payload []byte) (nlmsg.Payload, error) {
	switch {
	case t >= RTM_NEWLINK && t <= RTM_SETLINK:
		lm, err := ParseLinkMessage(payload)
		if err != nil {
			return nil, err
		}
		return Message{t, lm}, nil
	case t >= RTM_NEWADDR && t <= RTM_GETADDR:
		am, err := ParseAddressMessage(payload)
		if err != nil {
			return nil, err
		}
		return Message{t, am}, nil
	case t >= RTM_NEWROUTE && t <= RTM_GETROUTE:
		rm, err := ParseRouteMessage(payload)
		if err != nil {
			return nil, err
		}
		return Message{t, rm}, nil
	case t >= RTM_NEWNEIGH && t <= RTM_GETNEIGH:
		nm, err := ParseNeighbourMessage(payload)
		if err != nil {
			return nil, err
		}
		return Message{t, nm}, nil
	}
	return Message{t, opaqueBody(append([]byte(nil), payload...))}, nil
}
