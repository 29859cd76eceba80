//go:build !headless

package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays a tone on the default audio device.
type Beeper struct {
	tone   *Tone
	player *oto.Player
}

// NewBeeper opens the audio device and starts the silent tone playback.
func NewBeeper() (*Beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	tone := NewTone(SampleRate, Frequency)
	player := ctx.NewPlayer(tone)
	player.Play()

	return &Beeper{
		tone:   tone,
		player: player,
	}, nil
}

// SetActive switches the tone on or off.
func (b *Beeper) SetActive(active bool) {
	b.tone.SetActive(active)
}

// Close stops the playback.
func (b *Beeper) Close() error {
	if err := b.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
