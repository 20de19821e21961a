package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashes. The version suffix leaves room for
// changing the algorithm later.
const (
	DomainEdit = "geomigrate/edit/v1"
	DomainOps  = "geomigrate/ops/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator keeps domain and data from running together.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// OpsChecksum hashes the canonical encoding of an ops list.
func OpsChecksum(ops IRArray) (string, error) {
	canonical, err := MarshalCanonical(ops)
	if err != nil {
		return "", fmt.Errorf("OpsChecksum: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainOps, canonical), nil
}

// EditChecksum hashes an edit's name, author, and ops checksum together.
func EditChecksum(name, author, opsChecksum string) (string, error) {
	obj := IRObject{
		"name":   IRString(name),
		"author": IRString(author),
		"ops":    IRString(opsChecksum),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("EditChecksum: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainEdit, canonical), nil
}
