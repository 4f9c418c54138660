package audio

import (
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"nesapu/emu/log"
)

const sdlDeviceSamples = 1024

// sdlSink plays through SDL's queued-audio API. SDL has no pull callback on
// this path, so a feeder goroutine keeps the device queue topped up to the
// configured latency; when the queue runs dry the device plays silence on
// its own, which is exactly the underrun behavior we want.
type sdlSink struct {
	dev     sdl.AudioDeviceID
	ring    *Ring
	rate    int
	latency time.Duration
	buf     []float32

	stop chan struct{}
	done chan struct{}
}

func newSDLSink(ring *Ring, sampleRate int, latency time.Duration) (*sdlSink, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, err
	}

	spec := sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_F32SYS,
		Channels: 1,
		Samples:  sdlDeviceSamples,
	}
	var obtained sdl.AudioSpec
	dev, err := sdl.OpenAudioDevice("", false, &spec, &obtained, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, err
	}

	log.ModAudio.InfoZ("sdl audio device opened").
		Int("rate", sampleRate).
		Duration("latency", latency).
		End()

	return &sdlSink{
		dev:     dev,
		ring:    ring,
		rate:    sampleRate,
		latency: latency,
		buf:     make([]float32, sdlDeviceSamples),
	}, nil
}

func (s *sdlSink) Start() error {
	if s.stop != nil {
		return nil
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.feed(s.stop, s.done)

	sdl.PauseAudioDevice(s.dev, false)
	return nil
}

func (s *sdlSink) Pause(paused bool) {
	sdl.PauseAudioDevice(s.dev, paused)
}

func (s *sdlSink) Close() error {
	if s.stop != nil {
		close(s.stop)
		<-s.done
		s.stop = nil
		s.done = nil
	}
	sdl.CloseAudioDevice(s.dev)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	return nil
}

func (s *sdlSink) feed(stop, done chan struct{}) {
	defer close(done)

	// Bytes of queued audio corresponding to the target latency.
	target := uint32(float64(s.rate)*s.latency.Seconds()) * 4

	ticker := time.NewTicker(2 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		queued := sdl.GetQueuedAudioSize(s.dev)
		for queued < target {
			want := min(int(target-queued)/4, len(s.buf))
			if want == 0 {
				break
			}
			n := s.ring.Read(s.buf[:want])
			if n == 0 {
				break
			}
			raw := unsafe.Slice((*byte)(unsafe.Pointer(&s.buf[0])), n*4)
			if err := sdl.QueueAudio(s.dev, raw); err != nil {
				log.ModAudio.WarnZ("failed to queue audio").Error("err", err).End()
				break
			}
			queued += uint32(n) * 4
		}
	}
}
