// This file is part of ZXchip.
//
// ZXchip is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ZXchip is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ZXchip.  If not, see <https://www.gnu.org/licenses/>.

// Package limiter limits events to a fixed rate. It is used to pace the
// emulation when there is no audio device to do so.
//
// A new Limiter is created with the period of a single event:
//
//	lim := limiter.NewLimiter(20 * time.Millisecond)
//	defer lim.Stop()
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for lim.Wait(ctx) {
//		renderImage()
//	}
package limiter

import (
	"context"
	"time"
)

// Limiter triggers once per period.
type Limiter struct {
	period time.Duration
	ticker *time.Ticker
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// A period of zero or less is treated as one millisecond.
func NewLimiter(period time.Duration) *Limiter {
	if period <= 0 {
		period = time.Millisecond
	}
	return &Limiter{
		period: period,
		ticker: time.NewTicker(period),
	}
}

// Period returns the current period.
func (lim *Limiter) Period() time.Duration {
	return lim.period
}

// SetPeriod changes the period at which the Limiter triggers.
func (lim *Limiter) SetPeriod(period time.Duration) {
	if period <= 0 {
		period = time.Millisecond
	}
	lim.period = period
	lim.ticker.Reset(period)
}

// Wait blocks until the next trigger. Returns false if the context was
// cancelled before the trigger.
func (lim *Limiter) Wait(ctx context.Context) bool {
	select {
	case <-lim.ticker.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// HasWaited returns true if the trigger has already happened and false if it
// is still yet to happen. Does not block.
func (lim *Limiter) HasWaited() bool {
	select {
	case <-lim.ticker.C:
		return true
	default:
		return false
	}
}

// Stop the Limiter. It should not be used after this call.
func (lim *Limiter) Stop() {
	lim.ticker.Stop()
}
