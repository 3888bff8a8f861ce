// Package audit implements the audit-netlink protocol family on top of
// nlmsg: the AUDIT_* command/status structs, the variable-length audit
// rule encoding, opaque user messages, and textual event records.
package audit

// Command range (1000-1099): message types whose payload is a fixed C
// struct or the variable-length rule encoding.
const (
	AUDIT_GET         = 1000
	AUDIT_SET         = 1001
	AUDIT_LIST        = 1002 // deprecated
	AUDIT_ADD         = 1003 // deprecated
	AUDIT_DEL         = 1004 // deprecated
	AUDIT_USER        = 1005
	AUDIT_LOGIN       = 1006
	AUDIT_WATCH_INS   = 1007
	AUDIT_WATCH_REM   = 1008
	AUDIT_WATCH_LIST  = 1009
	AUDIT_SIGNAL_INFO = 1010
	AUDIT_ADD_RULE    = 1011
	AUDIT_DEL_RULE    = 1012
	AUDIT_LIST_RULES  = 1013
	AUDIT_TRIM        = 1014
	AUDIT_MAKE_EQUIV  = 1015
	AUDIT_TTY_GET     = 1016
	AUDIT_TTY_SET     = 1017
	AUDIT_SET_FEATURE = 1018
	AUDIT_GET_FEATURE = 1019

	commandRangeStart = AUDIT_GET
	commandRangeEnd   = 1099
)

// User message ranges (1100-1199, 2100-2999): opaque payloads.
const (
	userRange1Start = 1100
	userRange1End   = 1199
	userRange2Start = 2100
	userRange2End   = 2999
)

// Event records (1300+): the message_type itself is the record_type.
const eventRangeStart = 1300

// AUDIT_STATUS_* mask bits for AuditStatus.Mask.
const (
	AUDIT_STATUS_ENABLED          = 0x1
	AUDIT_STATUS_FAILURE          = 0x2
	AUDIT_STATUS_PID              = 0x4
	AUDIT_STATUS_RATE_LIMIT       = 0x8
	AUDIT_STATUS_BACKLOG_LIMIT    = 0x10
	AUDIT_STATUS_BACKLOG_WAIT_TIME = 0x20
	AUDIT_STATUS_LOST             = 0x40
)

// AUDIT_MAX_FIELDS and AUDIT_BITMASK_SIZE bound an audit_rule's variable
// parts: the syscall bitmask is AUDIT_BITMASK_SIZE 32-bit words, and at
// most AUDIT_MAX_FIELDS (field, value, fieldflag) triples follow it.
const (
	AUDIT_MAX_FIELDS    = 64
	AUDIT_BITMASK_SIZE  = 64
)

// Field identifiers a rule's Fields array can reference. A representative
// subset of linux/audit.h's AUDIT_* field constants, covering the common
// numeric fields plus every string-valued field below.
const (
	AUDIT_PID = iota
	AUDIT_UID
	AUDIT_EUID
	AUDIT_SUID
	AUDIT_FSUID
	AUDIT_GID
	AUDIT_EGID
	AUDIT_SGID
	AUDIT_FSGID
	AUDIT_LOGINUID
	AUDIT_PERS
	AUDIT_ARCH
	AUDIT_MSGTYPE
	AUDIT_SUBJ_USER
	AUDIT_SUBJ_ROLE
	AUDIT_SUBJ_TYPE
	AUDIT_SUBJ_SEN
	AUDIT_SUBJ_CLR
	AUDIT_PPID
	AUDIT_OBJ_USER
	AUDIT_OBJ_ROLE
	AUDIT_OBJ_TYPE
	AUDIT_OBJ_LEV_LOW
	AUDIT_OBJ_LEV_HIGH
)

const (
	AUDIT_DEVMAJOR = 100 + iota
	AUDIT_DEVMINOR
	AUDIT_INODE
	AUDIT_EXIT
	AUDIT_SUCCESS
	AUDIT_WATCH
	AUDIT_PERM
	AUDIT_DIR
	AUDIT_FILETYPE
	AUDIT_OBJ_UID
	AUDIT_OBJ_GID
	AUDIT_FIELD_COMPARE
	AUDIT_EXE
)

const AUDIT_FILTERKEY = 210

// stringFields is the set of field identifiers that are string-valued:
// their length lives in Values[i] and their bytes in the trailing buffer.
var stringFields = map[uint32]bool{
	AUDIT_WATCH:      true,
	AUDIT_DIR:        true,
	AUDIT_FILTERKEY:  true,
	AUDIT_EXE:        true,
	AUDIT_SUBJ_USER:  true,
	AUDIT_SUBJ_ROLE:  true,
	AUDIT_SUBJ_TYPE:  true,
	AUDIT_SUBJ_SEN:   true,
	AUDIT_SUBJ_CLR:   true,
	AUDIT_OBJ_USER:   true,
	AUDIT_OBJ_ROLE:   true,
	AUDIT_OBJ_TYPE:   true,
	AUDIT_OBJ_LEV_LOW:  true,
	AUDIT_OBJ_LEV_HIGH: true,
}

// Comparator operators packed into the high bits of a rule field's
// fieldflags, masked with AUDIT_NEGATE separately.
const (
	AUDIT_NEGATE       = 0x80000000
	AUDIT_BIT_MASK     = 0x08000000
	AUDIT_LESS_THAN    = 0x10000000
	AUDIT_GREATER_THAN = 0x20000000
	AUDIT_NOT_EQUAL    = 0x30000000
	AUDIT_EQUAL        = 0x40000000
	AUDIT_BIT_TEST     = AUDIT_BIT_MASK | AUDIT_EQUAL
)

func isValidComparator(op uint32) bool {
	switch op {
	case AUDIT_EQUAL, AUDIT_NOT_EQUAL, AUDIT_LESS_THAN, AUDIT_GREATER_THAN, AUDIT_BIT_MASK, AUDIT_BIT_TEST:
		return true
	}
	return false
}

// AUDIT_NEVER/POSSIBLE/ALWAYS are the rule's Action values.
const (
	AUDIT_NEVER = iota
	AUDIT_POSSIBLE
	AUDIT_ALWAYS
)
