package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries "t=<unix seconds>,v1=<hex hmac>".
const SignatureHeader = "Payment-Signature"

var (
	errMissingSignature = errors.New("missing signature header")
	errMalformed        = errors.New("malformed signature header")
	errStale            = errors.New("signature timestamp outside tolerance")
	errMismatch         = errors.New("signature mismatch")
)

// Sign returns the header value for body signed at ts with secret.
func Sign(secret []byte, ts time.Time, body []byte) string {
	unix := strconv.FormatInt(ts.Unix(), 10)
	return fmt.Sprintf("t=%s,v1=%s", unix, hex.EncodeToString(mac(secret, unix, body)))
}

// Verify checks header against body. Several v1 entries are accepted so the
// provider can rotate secrets.
func Verify(secret []byte, header string, body []byte, now time.Time, tolerance time.Duration) error {
	header = strings.TrimSpace(header)
	if header == "" {
		return errMissingSignature
	}

	var timestamp string
	var signatures [][]byte
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return errMalformed
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			decoded, err := hex.DecodeString(value)
			if err != nil {
				return errMalformed
			}
			signatures = append(signatures, decoded)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return errMalformed
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errMalformed
	}
	if tolerance > 0 {
		skew := now.Sub(time.Unix(unix, 0))
		if skew < 0 {
			skew = -skew
		}
		if skew > tolerance {
			return errStale
		}
	}

	expected := mac(secret, timestamp, body)
	for _, sig := range signatures {
		if hmac.Equal(sig, expected) {
			return nil
		}
	}
	return errMismatch
}

func mac(secret []byte, timestamp string, body []byte) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(timestamp))
	h.Write([]byte("."))
	h.Write(body)
	return h.Sum(nil)
}
