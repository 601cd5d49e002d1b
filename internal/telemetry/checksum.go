package telemetry

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/farmfit/farmfit/internal/domain"
)

// ComputeChecksum produces the HMAC-SHA256 integrity tag for a reading.
// The canonical form pins field order so sender and receiver agree.
func ComputeChecksum(secret string, r domain.SensorReading) string {
	canonical := fmt.Sprintf("%s|%d|%.6f|%s", r.SensorID, r.Timestamp.Unix(), r.Value, r.Unit)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyChecksum checks a reading's integrity tag in constant time
func VerifyChecksum(secret string, r domain.SensorReading) bool {
	expected := ComputeChecksum(secret, r)
	return hmac.Equal([]byte(expected), []byte(r.Checksum))
}
