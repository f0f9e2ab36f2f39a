package wsp

import (
	"time"

	"github.com/arloliu/whisper/internal/options"
)

// DecoderOption is a functional option for configuring a Decoder.
type DecoderOption = options.Option[*Decoder]

// WithNow pins the decoder's notion of the current time, used only for the
// advisory future-timestamp plausibility check. Decoding with a pinned clock
// is fully deterministic, which is what tests should do.
func WithNow(now time.Time) DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.nowFunc = func() time.Time { return now }
	})
}

// WithNowFunc injects the clock the decoder consults. The default is
// time.Now.
func WithNowFunc(nowFunc func() time.Time) DecoderOption {
	return options.NoError(func(d *Decoder) {
		if nowFunc != nil {
			d.nowFunc = nowFunc
		}
	})
}
