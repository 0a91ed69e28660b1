package referralcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length of every generated referral code.
const Length = 6

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// New returns a random code of Length characters, each drawn uniformly and
// independently from A-Z0-9. Uniqueness is the caller's concern.
func New() (string, error) {
	buf := make([]byte, Length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate random index failed: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
