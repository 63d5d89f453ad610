package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"reviewhub/internal/http-api/models"
)

const confirmationCodeLen = 40

// ConfirmationCodes derives single-use signup codes from a user's current
// state. The code is an HMAC over the fields that change when the account
// is activated, so redeeming a code invalidates it without any storage.
type ConfirmationCodes struct {
	secret []byte
}

func NewConfirmationCodes(secret string) *ConfirmationCodes {
	return &ConfirmationCodes{secret: []byte(secret)}
}

// Make returns the confirmation code for the user's current state.
func (c *ConfirmationCodes) Make(user *models.User) string {
	mac := hmac.New(sha256.New, c.secret)
	fmt.Fprintf(mac, "%s|%s|%s|%t", user.ID, user.Username, user.Email, user.Active)
	return hex.EncodeToString(mac.Sum(nil))[:confirmationCodeLen]
}

// Check reports whether code matches the user's current state.
func (c *ConfirmationCodes) Check(user *models.User, code string) bool {
	return hmac.Equal([]byte(c.Make(user)), []byte(code))
}
