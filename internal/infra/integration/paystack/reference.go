package paystack

import (
	"crypto/rand"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// References look like MJ_1712345678901_4F7K2Q9X: fixed prefix, millisecond
// timestamp, random uppercase alphanumeric suffix.
const (
	referencePrefix    = "MJ"
	referenceSuffixLen = 8
	suffixAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var referencePattern = regexp.MustCompile(`^MJ_\d+_[A-Z0-9]+$`)

// MaxAmountNaira is the per-transaction ceiling.
const MaxAmountNaira float64 = 1_000_000

func GenerateReference() string {
	buf := make([]byte, referenceSuffixLen)
	rand.Read(buf)

	var suffix strings.Builder
	for _, b := range buf {
		suffix.WriteByte(suffixAlphabet[int(b)%len(suffixAlphabet)])
	}

	return fmt.Sprintf("%s_%d_%s", referencePrefix, time.Now().UnixMilli(), suffix.String())
}

func ValidateReference(reference string) bool {
	return referencePattern.MatchString(reference)
}

// ValidateAmount checks a naira amount: positive, within the ceiling, and
// exactly representable in kobo. Fractional-kobo amounts are rejected.
func ValidateAmount(naira float64) bool {
	if naira <= 0 || naira > MaxAmountNaira {
		return false
	}
	kobo := naira * 100
	return math.Abs(kobo-math.Round(kobo)) < 1e-9
}

// ToKobo converts a validated naira amount to minor units.
func ToKobo(naira float64) int64 {
	return int64(math.Round(naira * 100))
}

// metadataAllowList is the only set of fields forwarded to the gateway,
// each capped in length. Everything else is dropped.
var metadataAllowList = map[string]struct{}{
	"full_name":      {},
	"program":        {},
	"tech_track":     {},
	"tech_skill":     {},
	"academic_level": {},
	"interests":      {},
	"phone":          {},
}

const metadataMaxFieldLen = 200

func SanitizeMetadata(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}

	out := make(map[string]string)
	for k, v := range in {
		if _, ok := metadataAllowList[k]; !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if len(v) > metadataMaxFieldLen {
			v = v[:metadataMaxFieldLen]
		}
		if v != "" {
			out[k] = v
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
