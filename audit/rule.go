package audit

import "github.com/m-lab/netlink-codec/nlenc"

// ruleFixedLen is the size of struct audit_rule_data up to (not including)
// its trailing string buffer: flags, action, field_count, the
// AUDIT_BITMASK_SIZE-word syscall mask, and three AUDIT_MAX_FIELDS-word
// arrays (fields, values, fieldflags), followed by buflen.
const ruleFixedLen = 4 + 4 + 4 + AUDIT_BITMASK_SIZE*4 + AUDIT_MAX_FIELDS*4*3 + 4

// RuleField is one (field, value, comparator) triple of an AuditRule. Str
// is populated, and Value holds its byte length, when Field identifies a
// string-valued field (AUDIT_WATCH, AUDIT_DIR, AUDIT_FILTERKEY, AUDIT_EXE,
// AUDIT_SUBJ_*, AUDIT_OBJ_*); otherwise Value is the field's numeric
// comparand and Str is empty.
type RuleField struct {
	Field      uint32
	Value      uint32
	FieldFlags uint32
	Str        string
}

func (f RuleField) isString() bool { return stringFields[f.Field] }

func (f RuleField) comparator() uint32 { return f.FieldFlags &^ AUDIT_NEGATE }

// AuditRule is the body of AUDIT_ADD_RULE/AUDIT_DEL_RULE/AUDIT_LIST_RULES,
// the kernel's variable-length struct audit_rule_data.
type AuditRule struct {
	Flags  uint32
	Action uint32
	Mask   [AUDIT_BITMASK_SIZE]uint32
	Fields []RuleField
}

// Validate checks the invariants a rule must satisfy before it is
// wire-encoded: no more than AUDIT_MAX_FIELDS fields, and every field's
// comparator is exactly one of the closed set of operators.
func (r AuditRule) Validate() error {
	if len(r.Fields) > AUDIT_MAX_FIELDS {
		return nlmsgMalformed("audit rule has %d fields, max %d", len(r.Fields), AUDIT_MAX_FIELDS)
	}
	for i, f := range r.Fields {
		if !isValidComparator(f.comparator()) {
			return nlmsgMalformed("field %d: fieldflags %#x is not a single known comparator", i, f.FieldFlags)
		}
	}
	return nil
}

// Len computes the wire size, recomputing the trailing string buffer's
// length from the current Fields rather than trusting any previously
// parsed buflen.
func (r AuditRule) Len() int { return ruleFixedLen + r.buflen() }

func (r AuditRule) buflen() int {
	n := 0
	for _, f := range r.Fields {
		if f.isString() {
			n += len(f.Str)
		}
	}
	return n
}

// Emit writes the rule to b, repacking the string buffer in field order:
// every string field's Value is recomputed as len(Str), so a caller never
// has to keep Value and Str consistent by hand.
func (r AuditRule) Emit(b []byte) {
	nlenc.PutUint32(b[0:4], r.Flags)
	nlenc.PutUint32(b[4:8], r.Action)
	nlenc.PutUint32(b[8:12], uint32(len(r.Fields)))

	off := 12
	for i := 0; i < AUDIT_BITMASK_SIZE; i++ {
		nlenc.PutUint32(b[off:off+4], r.Mask[i])
		off += 4
	}

	fieldsOff := off
	valuesOff := fieldsOff + AUDIT_MAX_FIELDS*4
	flagsOff := valuesOff + AUDIT_MAX_FIELDS*4
	buflenOff := flagsOff + AUDIT_MAX_FIELDS*4
	bufOff := buflenOff + 4

	buflen := 0
	for i, f := range r.Fields {
		nlenc.PutUint32(b[fieldsOff+i*4:fieldsOff+i*4+4], f.Field)
		nlenc.PutUint32(b[flagsOff+i*4:flagsOff+i*4+4], f.FieldFlags)
		if f.isString() {
			nlenc.PutUint32(b[valuesOff+i*4:valuesOff+i*4+4], uint32(len(f.Str)))
			copy(b[bufOff+buflen:], f.Str)
			buflen += len(f.Str)
		} else {
			nlenc.PutUint32(b[valuesOff+i*4:valuesOff+i*4+4], f.Value)
		}
	}
	for i := len(r.Fields); i < AUDIT_MAX_FIELDS; i++ {
		nlenc.PutUint32(b[fieldsOff+i*4:fieldsOff+i*4+4], 0)
		nlenc.PutUint32(b[valuesOff+i*4:valuesOff+i*4+4], 0)
		nlenc.PutUint32(b[flagsOff+i*4:flagsOff+i*4+4], 0)
	}
	nlenc.PutUint32(b[buflenOff:buflenOff+4], uint32(buflen))
}

// ParseAuditRule decodes an audit_rule_data payload. It validates that the
// declared buflen matches the bytes actually present and that the sum of
// string-field lengths consumes exactly buflen bytes in field order.
func ParseAuditRule(b []byte) (AuditRule, error) {
	if len(b) < ruleFixedLen {
		return AuditRule{}, nlmsgTruncated("audit_rule_data needs at least %d bytes, got %d", ruleFixedLen, len(b))
	}
	flags := nlenc.Uint32(b[0:4])
	action := nlenc.Uint32(b[4:8])
	fieldCount := nlenc.Uint32(b[8:12])
	if fieldCount > AUDIT_MAX_FIELDS {
		return AuditRule{}, nlmsgMalformed("audit rule declares %d fields, max %d", fieldCount, AUDIT_MAX_FIELDS)
	}

	var mask [AUDIT_BITMASK_SIZE]uint32
	off := 12
	for i := 0; i < AUDIT_BITMASK_SIZE; i++ {
		mask[i] = nlenc.Uint32(b[off : off+4])
		off += 4
	}

	fieldsOff := off
	valuesOff := fieldsOff + AUDIT_MAX_FIELDS*4
	flagsOff := valuesOff + AUDIT_MAX_FIELDS*4
	buflenOff := flagsOff + AUDIT_MAX_FIELDS*4
	bufOff := buflenOff + 4

	buflen := nlenc.Uint32(b[buflenOff : buflenOff+4])
	if len(b) != bufOff+int(buflen) {
		return AuditRule{}, nlmsgMalformed("audit_rule_data declares buflen %d but payload has %d trailing bytes", buflen, len(b)-bufOff)
	}
	buf := b[bufOff:]

	fields := make([]RuleField, fieldCount)
	consumed := 0
	for i := 0; i < int(fieldCount); i++ {
		field := nlenc.Uint32(b[fieldsOff+i*4 : fieldsOff+i*4+4])
		value := nlenc.Uint32(b[valuesOff+i*4 : valuesOff+i*4+4])
		fieldFlags := nlenc.Uint32(b[flagsOff+i*4 : flagsOff+i*4+4])
		rf := RuleField{Field: field, Value: value, FieldFlags: fieldFlags}
		if !isValidComparator(rf.comparator()) {
			return AuditRule{}, nlmsgMalformed("field %d: fieldflags %#x is not a single known comparator", i, fieldFlags)
		}
		if rf.isString() {
			n := int(value)
			if consumed+n > len(buf) {
				return AuditRule{}, nlmsgMalformed("field %d: string length %d overruns the %d-byte buffer", i, n, len(buf))
			}
			rf.Str = string(buf[consumed : consumed+n])
			consumed += n
		}
		fields[i] = rf
	}
	if consumed != len(buf) {
		return AuditRule{}, nlmsgMalformed("audit rule buffer has %d unconsumed bytes after %d string fields", len(buf)-consumed, fieldCount)
	}

	return AuditRule{Flags: flags, Action: action, Mask: mask, Fields: fields}, nil
}
