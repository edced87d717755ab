package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

// ErrTimeRange is returned for times a ULID cannot encode: before the
// Unix epoch or after the 48-bit millisecond limit (year 10889).
var ErrTimeRange = errors.New("time outside ULID range")

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID for the current time. IDs made in the same
// millisecond still sort in creation order.
func New() string {
	s, err := At(time.Now())
	if err != nil {
		panic(err)
	}
	return s
}

// At returns a ULID stamped with t, so trades imported after the fact
// sort by when they were opened rather than when they were imported.
func At(t time.Time) (string, error) {
	if t.Before(time.UnixMilli(0)) || t.After(ulid.Time(ulid.MaxTime())) {
		return "", fmt.Errorf("%w: %s", ErrTimeRange, t.UTC().Format(time.RFC3339))
	}

	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Time extracts the timestamp encoded in a ULID string.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
