package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"
)

const (
	// OTPLength is the number of digits in a login code.
	OTPLength = 6
	// OTPTTL is how long an issued code stays valid.
	OTPTTL = 30 * time.Minute
	// OTPMaxAttempts caps failed verifications before the code is burned.
	OTPMaxAttempts = 5

	sessionTokenBytes = 32
)

// NormalizeEmail lowercases and validates an email address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("invalid email address")
	}
	return email, nil
}

// GenerateOTP returns a random numeric code of OTPLength digits, zero padded.
func GenerateOTP() (string, error) {
	max := big.NewInt(1)
	for range OTPLength {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPLength, n), nil
}

// HashOTP returns the hex SHA-256 of a code. Only hashes are stored.
func HashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// VerifyOTPHash compares a candidate code against a stored hash in constant
// time.
func VerifyOTPHash(storedHash, candidate string) bool {
	candidateHash := HashOTP(candidate)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(candidateHash)) == 1
}

// GenerateSessionToken returns a bearer token and the hash stored at rest.
func GenerateSessionToken() (token, tokenHash string, err error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate session token: %w", err)
	}
	token = base64.RawURLEncoding.EncodeToString(buf)
	return token, HashSessionToken(token), nil
}

// HashSessionToken returns the hex SHA-256 of a bearer token.
func HashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
