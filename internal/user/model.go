package user

import (
	"database/sql"
	"time"
)

// OTPWindow is how long a dispatched code stays valid.
const OTPWindow = 5 * time.Minute

type User struct {
	ID     uint
	Mobile string

	// Active OTP challenge, at most one per mobile. The code is stored as a
	// bcrypt hash and cleared after a successful verify.
	OTPHash   sql.NullString
	OTPExpiry sql.NullTime

	// Two most recently used delivery addresses.
	AddressNew sql.NullInt64
	AddressOld sql.NullInt64
}
