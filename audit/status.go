package audit

import "github.com/m-lab/netlink-codec/nlenc"

// AuditStatusLen is the fixed size of an AuditStatus payload: fourteen
// 32-bit words (mask, enabled, failure, pid, rate_limit, backlog_limit,
// lost, backlog, feature_bitmap, backlog_wait_time,
// backlog_wait_time_actual, version, and two reserved trailing words).
// FeatureBitmap and Version are encoded as two separate words.
const AuditStatusLen = 56

// AuditStatus is the body of AUDIT_GET/AUDIT_SET.
type AuditStatus struct {
	Mask                  uint32
	Enabled               uint32
	Failure               uint32
	Pid                   uint32
	RateLimit             uint32
	BacklogLimit          uint32
	Lost                  uint32
	Backlog               uint32
	FeatureBitmap         uint32
	BacklogWaitTime       uint32
	BacklogWaitTimeActual uint32
	Version               uint32
	Reserved1             uint32
	Reserved2             uint32
}

func (s AuditStatus) Len() int { return AuditStatusLen }

func (s AuditStatus) Emit(b []byte) {
	nlenc.PutUint32(b[0:4], s.Mask)
	nlenc.PutUint32(b[4:8], s.Enabled)
	nlenc.PutUint32(b[8:12], s.Failure)
	nlenc.PutUint32(b[12:16], s.Pid)
	nlenc.PutUint32(b[16:20], s.RateLimit)
	nlenc.PutUint32(b[20:24], s.BacklogLimit)
	nlenc.PutUint32(b[24:28], s.Lost)
	nlenc.PutUint32(b[28:32], s.Backlog)
	nlenc.PutUint32(b[32:36], s.FeatureBitmap)
	nlenc.PutUint32(b[36:40], s.BacklogWaitTime)
	nlenc.PutUint32(b[40:44], s.BacklogWaitTimeActual)
	nlenc.PutUint32(b[44:48], s.Version)
	nlenc.PutUint32(b[48:52], s.Reserved1)
	nlenc.PutUint32(b[52:56], s.Reserved2)
}

// ParseAuditStatus decodes an audit_status payload. The payload must be
// exactly AuditStatusLen bytes: unlike NLAs, fixed C structs in this
// protocol carry no self-describing length.
func ParseAuditStatus(b []byte) (AuditStatus, error) {
	if len(b) != AuditStatusLen {
		return AuditStatus{}, nlmsgMalformed("audit_status needs exactly %d bytes, got %d", AuditStatusLen, len(b))
	}
	return AuditStatus{
		Mask:                  nlenc.Uint32(b[0:4]),
		Enabled:               nlenc.Uint32(b[4:8]),
		Failure:               nlenc.Uint32(b[8:12]),
		Pid:                   nlenc.Uint32(b[12:16]),
		RateLimit:             nlenc.Uint32(b[16:20]),
		BacklogLimit:          nlenc.Uint32(b[20:24]),
		Lost:                  nlenc.Uint32(b[24:28]),
		Backlog:               nlenc.Uint32(b[28:32]),
		FeatureBitmap:         nlenc.Uint32(b[32:36]),
		BacklogWaitTime:       nlenc.Uint32(b[36:40]),
		BacklogWaitTimeActual: nlenc.Uint32(b[40:44]),
		Version:               nlenc.Uint32(b[44:48]),
		Reserved1:             nlenc.Uint32(b[48:52]),
		Reserved2:             nlenc.Uint32(b[52:56]),
	}, nil
}

// AuditFeaturesLen is the fixed size of an AuditFeatures payload.
const AuditFeaturesLen = 16

// AuditFeatures is the body of AUDIT_GET_FEATURE/AUDIT_SET_FEATURE.
type AuditFeatures struct {
	Vers     uint32
	Mask     uint32
	Features uint32
	Lock     uint32
}

func (f AuditFeatures) Len() int { return AuditFeaturesLen }

func (f AuditFeatures) Emit(b []byte) {
	nlenc.PutUint32(b[0:4], f.Vers)
	nlenc.PutUint32(b[4:8], f.Mask)
	nlenc.PutUint32(b[8:12], f.Features)
	nlenc.PutUint32(b[12:16], f.Lock)
}

func ParseAuditFeatures(b []byte) (AuditFeatures, error) {
	if len(b) != AuditFeaturesLen {
		return AuditFeatures{}, nlmsgMalformed("audit_features needs exactly %d bytes, got %d", AuditFeaturesLen, len(b))
	}
	return AuditFeatures{
		Vers:     nlenc.Uint32(b[0:4]),
		Mask:     nlenc.Uint32(b[4:8]),
		Features: nlenc.Uint32(b[8:12]),
		Lock:     nlenc.Uint32(b[12:16]),
	}, nil
}

// AuditTtyStatusLen is the fixed size of an AuditTtyStatus payload.
const AuditTtyStatusLen = 8

// AuditTtyStatus is the body of AUDIT_TTY_GET/AUDIT_TTY_SET.
type AuditTtyStatus struct {
	Enabled  uint32
	LogPasswd uint32
}

func (s AuditTtyStatus) Len() int { return AuditTtyStatusLen }

func (s AuditTtyStatus) Emit(b []byte) {
	nlenc.PutUint32(b[0:4], s.Enabled)
	nlenc.PutUint32(b[4:8], s.LogPasswd)
}

func ParseAuditTtyStatus(b []byte) (AuditTtyStatus, error) {
	if len(b) != AuditTtyStatusLen {
		return AuditTtyStatus{}, nlmsgMalformed("audit_tty_status needs exactly %d bytes, got %d", AuditTtyStatusLen, len(b))
	}
	return AuditTtyStatus{
		Enabled:   nlenc.Uint32(b[0:4]),
		LogPasswd: nlenc.Uint32(b[4:8]),
	}, nil
}

// AuditSigInfo is the body of an AUDIT_SIGNAL_INFO reply: the uid/pid that
// sent a terminating signal to the audit daemon, plus its LSM security
// context string (the kernel's flexible ctx[0] array member).
type AuditSigInfo struct {
	Uid uint32
	Pid uint32
	Ctx []byte
}

const auditSigInfoFixedLen = 8

func (s AuditSigInfo) Len() int { return auditSigInfoFixedLen + len(s.Ctx) }

func (s AuditSigInfo) Emit(b []byte) {
	nlenc.PutUint32(b[0:4], s.Uid)
	nlenc.PutUint32(b[4:8], s.Pid)
	copy(b[auditSigInfoFixedLen:], s.Ctx)
}

func ParseAuditSigInfo(b []byte) (AuditSigInfo, error) {
	if len(b) < auditSigInfoFixedLen {
		return AuditSigInfo{}, nlmsgTruncated("audit_sig_info needs at least %d bytes, got %d", auditSigInfoFixedLen, len(b))
	}
	return AuditSigInfo{
		Uid: nlenc.Uint32(b[0:4]),
		Pid: nlenc.Uint32(b[4:8]),
		Ctx: append([]byte(nil), b[auditSigInfoFixedLen:]...),
	}, nil
}
