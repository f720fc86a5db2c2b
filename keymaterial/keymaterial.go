// SPDX-License-Identifier: ISC

// Package keymaterial implements spec.md §4.F's KeyObject: an opaque
// container for secret/asymmetric key bytes plus algorithm descriptor,
// supporting the five storage-format envelope conversions and
// algorithm-layout region accessors. Grounded on
// _examples/bitmark-inc-bitmarkd/keypair.go's encrypted-private-key
// container (key bytes + encoding + derived wrapping secret),
// generalized from one fixed ed25519-over-password shape into the
// multi-format, multi-algorithm container spec.md §4.F/§3 describes.
package keymaterial

import (
	"encoding/base64"
	"encoding/hex"
	"math/big"

	"github.com/bitmark-inc/logger"

	"github.com/hychain/core/armor"
	"github.com/hychain/core/dispose"
	"github.com/hychain/core/fault"
)

var log = logger.New("keymaterial")

// Format is the key-material storage format, spec.md §3's five
// envelope kinds.
type Format int

const (
	FormatRaw Format = iota
	FormatBase64
	FormatHex
	FormatPEM
	FormatArmored
)

// KeyDetails is the free-form label/userId tag pair that travels with a
// key, per spec.md §3.
type KeyDetails struct {
	Label  string
	UserID string
}

// KeyDetailsPatch is a partial update to KeyDetails; nil fields are
// left unchanged, matching spec.md §4.F's "structural copy-in/out;
// never mutate caller's object" contract for setDetails.
type KeyDetailsPatch struct {
	Label  *string
	UserID *string
}

// AsymmetricMeta carries algorithm-specific metadata surfaced through
// GetInfo for asymmetric keys.
type AsymmetricMeta struct {
	PublicExponent *big.Int
	Curve          string
}

// KeyObject owns key bytes, a storage format, an algorithm descriptor,
// details, and an optional armor-wrapping secret. Per spec.md §4.F,
// format transitions are monotonic toward raw: decoding is never undone
// in-place.
type KeyObject struct {
	dispose.Guard
	raw            []byte
	cursor         int
	format         Format
	algorithm      Alg
	details        KeyDetails
	armorKey       []byte
	asymmetricMeta *AsymmetricMeta
}

// FromEncoded constructs a KeyObject over data under the given format.
// armorKey is required when format is FormatArmored; Armor also uses
// it, when non-empty, to encrypt the envelope body for any format.
func FromEncoded(data []byte, format Format, algorithm Alg, details KeyDetails, armorKey []byte) *KeyObject {
	return &KeyObject{
		raw:       append([]byte(nil), data...),
		format:    format,
		algorithm: algorithm,
		details:   details,
		armorKey:  append([]byte(nil), armorKey...),
	}
}

// ensureRaw performs the readKey format transition described in
// spec.md §4.F, exactly once, toward FormatRaw.
func (k *KeyObject) ensureRaw() error {
	switch k.format {
	case FormatRaw:
		return nil
	case FormatBase64:
		decoded, err := base64.StdEncoding.DecodeString(string(k.raw))
		if err != nil {
			return fault.ErrInvalidType.WithContext("reason", "bad base64 key material")
		}
		log.Debugf("key material transitioned base64 -> raw (%d bytes)", len(decoded))
		k.raw = decoded
		k.format = FormatRaw
		return nil
	case FormatHex:
		decoded, err := hex.DecodeString(string(k.raw))
		if err != nil {
			return fault.ErrInvalidType.WithContext("reason", "bad hex key material")
		}
		log.Debugf("key material transitioned hex -> raw (%d bytes)", len(decoded))
		k.raw = decoded
		k.format = FormatRaw
		return nil
	case FormatArmored:
		decoded, err := armor.Dearmor(k.raw, k.armorKey, "")
		if err != nil {
			return err
		}
		log.Debugf("key material dearmored -> raw (%d bytes)", len(decoded))
		k.raw = decoded
		k.format = FormatRaw
		return nil
	case FormatPEM:
		return fault.ErrNotImplemented
	default:
		return fault.ErrInvalidType.WithContext("format", int(k.format))
	}
}

// GetInfo returns a merged snapshot of details, algorithm, and
// asymmetric metadata. A big-integer publicExponent is serialized as
// "bigint:<decimal>" to remain JSON-safe.
func (k *KeyObject) GetInfo() (map[string]interface{}, error) {
	if err := k.Check(); err != nil {
		return nil, err
	}
	info := map[string]interface{}{
		"label":         k.details.Label,
		"userId":        k.details.UserID,
		"kind":          k.algorithm.Kind.String(),
		"length":        k.algorithm.Length,
		"ivLength":      k.algorithm.IVLength,
		"authTagLength": k.algorithm.AuthTagLength,
		"name":          k.algorithm.Name,
	}
	if k.asymmetricMeta != nil {
		if k.asymmetricMeta.PublicExponent != nil {
			info["publicExponent"] = "bigint:" + k.asymmetricMeta.PublicExponent.String()
		}
		if k.asymmetricMeta.Curve != "" {
			info["curve"] = k.asymmetricMeta.Curve
		}
	}
	return info, nil
}

// GetDetails returns a structural copy of the current details.
func (k *KeyObject) GetDetails() (KeyDetails, error) {
	if err := k.Check(); err != nil {
		return KeyDetails{}, err
	}
	return k.details, nil
}

// SetDetails merges a partial patch into details, leaving unset fields
// untouched and never mutating the caller's patch.
func (k *KeyObject) SetDetails(patch KeyDetailsPatch) error {
	if err := k.Check(); err != nil {
		return err
	}
	if patch.Label != nil {
		k.details.Label = *patch.Label
	}
	if patch.UserID != nil {
		k.details.UserID = *patch.UserID
	}
	return nil
}

// Read ensures the material is in raw form and returns up to n bytes
// from the reader cursor; n < 0 reads all remaining bytes.
func (k *KeyObject) Read(n int) ([]byte, error) {
	if err := k.Check(); err != nil {
		return nil, err
	}
	if err := k.ensureRaw(); err != nil {
		return nil, err
	}
	if n < 0 {
		out := append([]byte(nil), k.raw[k.cursor:]...)
		k.cursor = len(k.raw)
		return out, nil
	}
	if k.cursor+n > len(k.raw) {
		n = len(k.raw) - k.cursor
	}
	out := append([]byte(nil), k.raw[k.cursor:k.cursor+n]...)
	k.cursor += n
	return out, nil
}

// Master returns bytes [0, length) for a secret key, or the full
// (opaque asymmetric) buffer otherwise.
func (k *KeyObject) Master() ([]byte, error) {
	if err := k.Check(); err != nil {
		return nil, err
	}
	if err := k.ensureRaw(); err != nil {
		return nil, err
	}
	if k.algorithm.Kind != KindSecret {
		return append([]byte(nil), k.raw...), nil
	}
	end := k.algorithm.Length
	if end > len(k.raw) {
		end = len(k.raw)
	}
	return append([]byte(nil), k.raw[:end]...), nil
}

// IV returns [length, length+ivLength) for a secret key with
// ivLength > 0 and sufficient material; nil otherwise.
func (k *KeyObject) IV() ([]byte, error) {
	if err := k.Check(); err != nil {
		return nil, err
	}
	if err := k.ensureRaw(); err != nil {
		return nil, err
	}
	if k.algorithm.Kind != KindSecret || k.algorithm.IVLength <= 0 {
		return nil, nil
	}
	start := k.algorithm.Length
	end := start + k.algorithm.IVLength
	if end > len(k.raw) {
		return nil, nil
	}
	return append([]byte(nil), k.raw[start:end]...), nil
}

// AuthTag returns [length+ivLength, length+ivLength+authTagLength) for
// a secret key with authTagLength > 0 and sufficient material; nil
// otherwise.
func (k *KeyObject) AuthTag() ([]byte, error) {
	if err := k.Check(); err != nil {
		return nil, err
	}
	if err := k.ensureRaw(); err != nil {
		return nil, err
	}
	if k.algorithm.Kind != KindSecret || k.algorithm.AuthTagLength <= 0 {
		return nil, nil
	}
	start := k.algorithm.Length + k.algorithm.IVLength
	end := start + k.algorithm.AuthTagLength
	if end > len(k.raw) {
		return nil, nil
	}
	return append([]byte(nil), k.raw[start:end]...), nil
}

// LeftBuffer returns any bytes beyond the declared layout, for a secret
// key; nil otherwise.
func (k *KeyObject) LeftBuffer() ([]byte, error) {
	if err := k.Check(); err != nil {
		return nil, err
	}
	if err := k.ensureRaw(); err != nil {
		return nil, err
	}
	if k.algorithm.Kind != KindSecret {
		return nil, nil
	}
	offset := k.algorithm.Length + k.algorithm.IVLength + k.algorithm.AuthTagLength
	if offset >= len(k.raw) {
		return nil, nil
	}
	return append([]byte(nil), k.raw[offset:]...), nil
}

// CollectAuthTag splices tag at the auth-tag offset and rewrites the
// internal buffer; valid only when kind is secret.
func (k *KeyObject) CollectAuthTag(tag []byte) error {
	if err := k.Check(); err != nil {
		return err
	}
	if k.algorithm.Kind != KindSecret {
		return fault.ErrUnsupportedOperation
	}
	if err := k.ensureRaw(); err != nil {
		return err
	}
	offset := k.algorithm.Length + k.algorithm.IVLength
	end := offset + k.algorithm.AuthTagLength
	if offset > len(k.raw) {
		offset = len(k.raw)
	}
	rewritten := make([]byte, 0, offset+len(tag)+len(k.raw))
	rewritten = append(rewritten, k.raw[:offset]...)
	rewritten = append(rewritten, tag...)
	if end < len(k.raw) {
		rewritten = append(rewritten, k.raw[end:]...)
	}
	k.raw = rewritten
	return nil
}

// Armor materializes the current raw bytes and wraps them under the
// armor envelope using armorKey (plaintext body when no armor key was
// set), returning the result encoded per encoding ("", "raw", "base64",
// "hex").
func (k *KeyObject) Armor(encoding string) ([]byte, error) {
	if err := k.Check(); err != nil {
		return nil, err
	}
	if err := k.ensureRaw(); err != nil {
		return nil, err
	}
	encrypted := len(k.armorKey) > 0
	out, err := armor.Armor(encrypted, k.raw, k.armorKey)
	if err != nil {
		return nil, err
	}
	log.Debugf("armored key material (encrypted=%t, %d bytes)", encrypted, len(out))
	switch encoding {
	case "", "raw":
		return out, nil
	case "base64":
		return []byte(base64.StdEncoding.EncodeToString(out)), nil
	case "hex":
		return []byte(hex.EncodeToString(out)), nil
	default:
		return nil, fault.ErrInvalidType.WithContext("encoding", encoding)
	}
}
