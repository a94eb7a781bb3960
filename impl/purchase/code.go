package purchase

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
	"zylumine/entity"
)

const (
	codeMin = 100000
	codeMax = 999999
)

var span = big.NewInt(codeMax - codeMin + 1)

// Generate returns a fresh six-digit code, uniform in [100000, 999999].
// Nothing is stored; a code only becomes durable through guest registration.
func Generate() (entity.PurchaseCode, error) {
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return entity.PurchaseCode{}, err
	}
	return entity.PurchaseCode{
		Code:      strconv.FormatInt(n.Int64()+codeMin, 10),
		Timestamp: time.Now().UTC(),
	}, nil
}
